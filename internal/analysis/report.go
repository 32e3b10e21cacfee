package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/eda-cli/internal/dataset"
	"github.com/KaramelBytes/eda-cli/internal/utils"
)

// Report bundles the results of one analysis pass over a table.
type Report struct {
	Name           string         `json:"name"`
	Rows           int            `json:"rows"`
	Columns        int            `json:"columns"`
	Classification Classification `json:"classification"`
	Nulls          []NullCount    `json:"nulls"`
	Statistics     Summary        `json:"statistics"`
	// Sections are extra markdown blocks appended verbatim (e.g. chart menus).
	Sections []Section `json:"-"`
}

// Section is a titled markdown block rendered after the built-in ones.
type Section struct {
	Title string
	Lines []string
}

// Analyze classifies t, counts missing values and summarizes numeric columns.
func Analyze(t *dataset.Table, opt Options) *Report {
	cls := Classify(t, opt)
	rep := &Report{
		Name:           t.Name(),
		Rows:           t.Rows(),
		Columns:        len(t.Columns()),
		Classification: cls,
		Nulls:          Nulls(t),
		Statistics:     Statistics(t, cls.Numeric(), opt),
	}
	opt.logger().Debug("analysis complete", "table", rep.Name, "rows", rep.Rows,
		"categorical", len(cls.Categorical), "continuous", len(cls.Continuous), "discrete", len(cls.Discrete))
	return rep
}

// Markdown renders the report as plain sections suitable for a terminal or a document.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", r.Columns))

	b.WriteString("\n[VARIABLES]\n")
	for _, k := range Kinds {
		cols := r.Classification.Of(k)
		if len(cols) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s variables:\n", titleCase(k.String())))
		for i, c := range cols {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, safeName(c)))
		}
	}

	if len(r.Nulls) > 0 {
		b.WriteString("\n[MISSING VALUES]\n")
		for _, n := range r.Nulls {
			b.WriteString(fmt.Sprintf("- column '%s' has %d missing values (%.2f%% of total)\n", safeName(n.Column), n.Count, n.Fraction*100))
		}
	}

	if len(r.Statistics.Columns) > 0 {
		b.WriteString("\n[DESCRIPTIVE STATISTICS]\n")
		for _, c := range r.Statistics.Columns {
			st := r.Statistics.ByName[c]
			b.WriteString(fmt.Sprintf("Variable %s:\n", safeName(c)))
			b.WriteString(fmt.Sprintf("  Mean: %s\n", FormatValue(st.Mean)))
			b.WriteString(fmt.Sprintf("  Median: %s\n", FormatValue(st.Median)))
			b.WriteString(fmt.Sprintf("  Mode: %s\n", FormatValue(st.Mode)))
			b.WriteString(fmt.Sprintf("  Std deviation: %s\n", FormatValue(st.StdDev)))
		}
	}

	for _, s := range r.Sections {
		b.WriteString(fmt.Sprintf("\n[%s]\n", strings.ToUpper(s.Title)))
		for _, l := range s.Lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

// FormatValue prints an optional statistic, "N/A" when absent.
func FormatValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

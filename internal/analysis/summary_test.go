package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestNullsFractionAndOmission(t *testing.T) {
	tab := table(t, []string{"full", "holes"},
		[]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		[]string{"a", "", "b", "c", "d", "", "e", "f", "g", "h"},
	)
	nulls := Nulls(tab)
	if len(nulls) != 1 {
		t.Fatalf("got %d null entries, want 1: %+v", len(nulls), nulls)
	}
	n := nulls[0]
	if n.Column != "holes" || n.Count != 2 {
		t.Fatalf("unexpected entry %+v", n)
	}
	if n.Fraction != 0.2 {
		t.Fatalf("fraction = %v, want exactly 0.2", n.Fraction)
	}
}

func TestNullsIgnoreCoercionFailures(t *testing.T) {
	tab := table(t, []string{"v"}, []string{"1", "x", "3"})
	if nulls := Nulls(tab); len(nulls) != 0 {
		t.Fatalf("text cells are not missing: %+v", nulls)
	}
}

func TestStatisticsWithMissing(t *testing.T) {
	tab := table(t, []string{"v"}, []string{"1", "2", "3", "4", ""})
	sum := Statistics(tab, []string{"v"}, Options{})
	st, ok := sum.Get("v")
	if !ok {
		t.Fatalf("no statistics for v")
	}
	if st.Count != 4 {
		t.Fatalf("count = %d, want 4", st.Count)
	}
	if *st.Mean != 2.5 || *st.Median != 2.5 {
		t.Fatalf("mean/median = %v/%v, want 2.5/2.5", *st.Mean, *st.Median)
	}
	if *st.Mode != 1 {
		t.Fatalf("mode = %v, want 1 (smallest of tied values)", *st.Mode)
	}
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(*st.StdDev-want) > 1e-12 {
		t.Fatalf("stddev = %v, want sample stddev %v", *st.StdDev, want)
	}
}

func TestStatisticsModeAndDeterminism(t *testing.T) {
	tab := table(t, []string{"v"}, []string{"5", "3", "3", "9", "5", "1"})
	for i := 0; i < 3; i++ {
		st, _ := Statistics(tab, []string{"v"}, Options{}).Get("v")
		if *st.Mode != 3 {
			t.Fatalf("run %d: mode = %v, want 3", i, *st.Mode)
		}
	}
}

func TestStatisticsEmptyColumn(t *testing.T) {
	tab := table(t, []string{"v", "w"},
		[]string{"x", "y", ""},
		[]string{"4", "", ""},
	)
	sum := Statistics(tab, []string{"v", "w", "missing"}, Options{})
	if len(sum.Columns) != 2 {
		t.Fatalf("columns = %v", sum.Columns)
	}
	v, _ := sum.Get("v")
	if !v.Empty() || v.Mean != nil || v.Median != nil || v.Mode != nil || v.StdDev != nil {
		t.Fatalf("empty column should have all-absent stats, got %+v", v)
	}
	w, _ := sum.Get("w")
	if w.Count != 1 || *w.Mean != 4 || w.StdDev != nil {
		t.Fatalf("single value stats = %+v", w)
	}
}

func TestAnalyzeMarkdown(t *testing.T) {
	tab := table(t, []string{"city", "age", "income"},
		[]string{"Lima", "Quito", "Lima", "Cusco", ""},
		[]string{"21", "35", "40", "", "52"},
		[]string{"1200.5", "980.25", "1500", "2100.75", "1750"},
	)
	rep := Analyze(tab, Options{})
	rep.Sections = append(rep.Sections, Section{Title: "Chart types", Lines: []string{"- city: bar, pie, pareto"}})
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: test",
		"Rows: 5",
		"Categorical variables:\n1. city",
		"Continuous variables:\n1. income",
		"Discrete variables:\n1. age",
		"- column 'city' has 1 missing values (20.00% of total)",
		"Variable age:\n  Mean: 37",
		"[CHART TYPES]\n- city: bar, pie, pareto",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Index(md, "Variable income") > strings.Index(md, "Variable age") {
		t.Fatalf("continuous statistics should precede discrete ones:\n%s", md)
	}

	js, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(js), `"std_dev"`) || !strings.Contains(string(js), `"categorical": [`) {
		t.Fatalf("unexpected json: %s", js)
	}
}

func TestReportJSONInfiniteValues(t *testing.T) {
	tab := table(t, []string{"v"}, []string{"1", "2.5", "inf", "4"})
	rep := Analyze(tab, Options{})
	if k, _ := rep.Classification.KindOf("v"); k != Continuous {
		t.Fatalf("kind = %v, want continuous", k)
	}
	b, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got struct {
		Statistics struct {
			ByName map[string]map[string]any `json:"by_name"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, b)
	}
	v := got.Statistics.ByName["v"]
	if v["mean"] != "+Inf" {
		t.Fatalf("mean = %#v, want \"+Inf\"", v["mean"])
	}
	if v["median"] != 3.25 || v["count"] != float64(4) {
		t.Fatalf("unexpected stats %#v", v)
	}
}

func TestFormatValue(t *testing.T) {
	if FormatValue(nil) != "N/A" {
		t.Fatalf("nil should format as N/A")
	}
	v := 2.5
	if FormatValue(&v) != "2.5" {
		t.Fatalf("got %q", FormatValue(&v))
	}
}

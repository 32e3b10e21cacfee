package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultNAValues mirrors the markers most spreadsheet and pandas-style readers treat as missing.
var DefaultNAValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "null", "NULL", "None", "#N/A", "<NA>"}

// Table is an ordered set of equally long, named columns. Values are kept as raw text;
// interpretation (numeric coercion, kinds) belongs to the analysis package.
//
// A Table is read-only once built: Column returns copies, so nothing downstream can
// change what another consumer observes.
type Table struct {
	name string
	df   dataframe.DataFrame
}

// Column is a detached copy of one table column.
type Column struct {
	Name    string
	Values  []string
	Missing []bool
}

// NonMissing returns the values whose missing flag is false, in row order.
func (c Column) NonMissing() []string {
	out := make([]string, 0, len(c.Values))
	for i, v := range c.Values {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// FromRecords builds a Table from a header row followed by data rows. Short rows are
// padded with missing cells; rows longer than the header are a parse error.
func FromRecords(name string, records [][]string, naValues []string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, inputErr(name, ErrEmpty, nil)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(records) < 2 {
		return nil, inputErr(name, ErrEmpty, fmt.Errorf("header only, no data rows"))
	}
	ncol := len(header)
	rows := make([][]string, 0, len(records))
	rows = append(rows, header)
	for i, rec := range records[1:] {
		if len(rec) > ncol {
			return nil, inputErr(name, ErrParse, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(rec), ncol))
		}
		row := make([]string, ncol)
		copy(row, rec)
		rows = append(rows, row)
	}
	if naValues == nil {
		naValues = DefaultNAValues
	}
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, inputErr(name, ErrParse, df.Err)
	}
	return &Table{name: name, df: df}, nil
}

// Name is the display name of the source (usually the file base name).
func (t *Table) Name() string { return t.name }

// Columns returns column names in source order.
func (t *Table) Columns() []string { return t.df.Names() }

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.df.Nrow() }

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	for _, c := range t.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns a copy of the named column. It fails when the column does not exist or
// when its backing series cannot be read.
func (t *Table) Column(name string) (Column, error) {
	if !t.Has(name) {
		return Column{}, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return Column{}, fmt.Errorf("column %q: %w", name, s.Err)
	}
	n := s.Len()
	if n != t.df.Nrow() {
		return Column{}, fmt.Errorf("column %q: has %d values, table has %d rows", name, n, t.df.Nrow())
	}
	col := Column{Name: name, Values: make([]string, n), Missing: s.IsNaN()}
	for i := 0; i < n; i++ {
		if col.Missing[i] {
			continue
		}
		col.Values[i] = s.Elem(i).String()
	}
	return col, nil
}

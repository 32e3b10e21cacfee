package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "harvest.csv", "plot,yield,grade\nA1,12.5,x\nB3,,y\nC2,NA,\n")
	tab, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "harvest.csv", tab.Name())
	assert.Equal(t, []string{"plot", "yield", "grade"}, tab.Columns())
	assert.Equal(t, 3, tab.Rows())

	col, err := tab.Column("yield")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, col.Missing)
	assert.Equal(t, "12.5", col.Values[0])
	assert.Equal(t, []string{"12.5"}, col.NonMissing())

	grade, err := tab.Column("grade")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, grade.Missing)
}

func TestLoadTSVSniffsTab(t *testing.T) {
	p := writeFile(t, "m.tsv", "a\tb\n1\t2\n3\t4\n")
	tab, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Columns())
	assert.Equal(t, 2, tab.Rows())
}

func TestLoadPadsShortRows(t *testing.T) {
	p := writeFile(t, "short.csv", "a,b,c\n1,2\n4,5,6\n")
	tab, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	c, err := tab.Column("c")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, c.Missing)
}

func TestLoadInputErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		path   func() string
		reason error
	}{
		{"missing", func() string { return filepath.Join(dir, "nope.csv") }, ErrNotFound},
		{"empty", func() string { return writeFile(t, "empty.csv", "") }, ErrEmpty},
		{"header only", func() string { return writeFile(t, "header.csv", "a,b\n") }, ErrEmpty},
		{"long row", func() string { return writeFile(t, "long.csv", "a,b\n1,2,3\n") }, ErrParse},
		{"bad quote", func() string { return writeFile(t, "quote.csv", "a,b\n\"1,2\n") }, ErrParse},
		{"unsupported", func() string { return writeFile(t, "doc.pdf", "%PDF") }, ErrUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path(), LoadOptions{})
			require.Error(t, err)
			var ie *InputError
			require.True(t, errors.As(err, &ie), "expected *InputError, got %T", err)
			assert.ErrorIs(t, err, tc.reason)
		})
	}
}

func TestColumnUnknown(t *testing.T) {
	tab, err := FromRecords("t", [][]string{{"a"}, {"1"}}, nil)
	require.NoError(t, err)
	_, err = tab.Column("zzz")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.False(t, tab.Has("zzz"))
	assert.True(t, tab.Has("a"))
}

func TestColumnReturnsCopies(t *testing.T) {
	tab, err := FromRecords("t", [][]string{{"a"}, {"1"}, {"2"}}, nil)
	require.NoError(t, err)
	c1, err := tab.Column("a")
	require.NoError(t, err)
	c1.Values[0] = "changed"
	c1.Missing[1] = true
	c2, err := tab.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, c2.Values)
	assert.Equal(t, []bool{false, false}, c2.Missing)
}

func TestCustomNAValues(t *testing.T) {
	tab, err := FromRecords("t", [][]string{{"a"}, {"-"}, {"1"}, {""}}, []string{"-"})
	require.NoError(t, err)
	c, err := tab.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, c.Missing)
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"ana", 3}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"luis", 4.5}))
	_, err := f.NewSheet("Flags")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Flags", "A1", &[]interface{}{"flag"}))
	require.NoError(t, f.SetSheetRow("Flags", "A2", &[]interface{}{1}))
	require.NoError(t, f.SetSheetRow("Flags", "A3", &[]interface{}{0}))
	p := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestLoadXLSX(t *testing.T) {
	p := writeWorkbook(t)

	tab, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, tab.Columns())
	assert.Equal(t, 2, tab.Rows())

	byName, err := Load(p, LoadOptions{SheetName: "flags"})
	require.NoError(t, err)
	assert.Equal(t, []string{"flag"}, byName.Columns())
	assert.True(t, strings.Contains(byName.Name(), "sheet: Flags"))

	byIndex, err := Load(p, LoadOptions{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"flag"}, byIndex.Columns())

	_, err = Load(p, LoadOptions{SheetName: "missing"})
	assert.ErrorIs(t, err, ErrParse)
	_, err = Load(p, LoadOptions{SheetIndex: 9})
	assert.ErrorIs(t, err, ErrParse)
}

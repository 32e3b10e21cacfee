package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type delimitedLoader struct{}

func (delimitedLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (delimitedLoader) Load(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return ReadDelimited(f, filepath.Base(path), opt)
}

// ReadDelimited parses delimited text with a header row into a Table.
func ReadDelimited(r io.Reader, name string, opt LoadOptions) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, inputErr(name, ErrParse, fmt.Errorf("read row %d: %w", len(records)+1, err))
		}
		records = append(records, rec)
	}
	// Trailing blank lines are skipped by encoding/csv; a lone empty header is not a table.
	if len(records) == 0 || (len(records[0]) == 1 && strings.TrimSpace(records[0][0]) == "") {
		return nil, inputErr(name, ErrEmpty, nil)
	}
	return FromRecords(name, records, opt.NAValues)
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	// Default to comma; the extension is the only signal, the stream is read once.
	return ','
}

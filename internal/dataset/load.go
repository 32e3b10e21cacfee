package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how a file is turned into a Table.
type LoadOptions struct {
	// Delimiter for delimited text. If 0, chosen from the extension (tab for .tsv, comma otherwise).
	Delimiter rune
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet used when SheetName is empty. <= 0 means the first sheet.
	SheetIndex int
	// NAValues are the cell contents treated as missing. nil means DefaultNAValues.
	NAValues []string
}

// Loader reads one family of table files.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(delimitedLoader{})
	Register(xlsxLoader{})
}

// Load selects a loader by file name and returns the parsed Table. Every failure is
// reported as an *InputError.
func Load(path string, opt LoadOptions) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, inputErr(path, ErrNotFound, nil)
		}
		return nil, inputErr(path, ErrParse, fmt.Errorf("stat: %w", err))
	}
	if info.IsDir() {
		return nil, inputErr(path, ErrUnsupported, fmt.Errorf("is a directory"))
	}
	if info.Size() == 0 {
		return nil, inputErr(path, ErrEmpty, nil)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			t, err := l.Load(path, opt)
			if err != nil {
				var ie *InputError
				if errors.As(err, &ie) {
					ie.Path = path
					return nil, ie
				}
				return nil, inputErr(path, ErrParse, err)
			}
			return t, nil
		}
	}
	return nil, inputErr(path, ErrUnsupported, fmt.Errorf("extension %q", strings.ToLower(filepath.Ext(path))))
}

package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Load reads the selected sheet. If opt.SheetName is empty, opt.SheetIndex (1-based)
// picks the sheet, defaulting to the first one.
func (xlsxLoader) Load(path string, opt LoadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, inputErr(path, ErrParse, fmt.Errorf("open xlsx: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, inputErr(path, ErrEmpty, fmt.Errorf("workbook has no sheets"))
	}
	target := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, inputErr(path, ErrParse, fmt.Errorf("sheet '%s' not found; available sheets: %s",
				opt.SheetName, strings.Join(sheets, ", ")))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, inputErr(path, ErrParse, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets)))
		}
		target = sheets[idx-1]
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, inputErr(path, ErrParse, fmt.Errorf("read sheet %s: %w", target, err))
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, inputErr(path, ErrEmpty, fmt.Errorf("sheet %s has no header", target))
	}
	// excelize trims trailing empty cells per row; only cells past the header are dropped.
	ncol := len(rows[0])
	for i, r := range rows {
		if len(r) > ncol {
			rows[i] = r[:ncol]
		}
	}
	name := filepath.Base(path)
	if opt.SheetName != "" {
		name = fmt.Sprintf("%s (sheet: %s)", name, target)
	}
	return FromRecords(name, rows, opt.NAValues)
}

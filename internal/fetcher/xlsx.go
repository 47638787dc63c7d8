// Package fetcher reads the raw source extracts: XLSX workbooks and
// tab-separated Eurostat dumps. It returns rows as string slices; all shape
// transformation happens in the tidy package.
package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SheetOptions configures a workbook sheet read.
type SheetOptions struct {
	SheetName string // required: workbooks here are sheet-per-gas-family
	SkipRows  int    // leading banner rows to drop before the header row
}

// ReadSheet reads one sheet of an XLSX workbook and returns its rows as
// string slices, after skipping the configured banner rows.
func ReadSheet(path string, opts SheetOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}

	sheet, ok := f.Sheet[opts.SheetName]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found in %s", opts.SheetName, path)
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

// SheetNames lists the sheet names present in a workbook.
func SheetNames(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}
	names := make([]string, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	return names, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

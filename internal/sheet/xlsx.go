package sheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the requested sheet of a workbook.
//
// Cell values are read raw, so dates stay serial numbers and amounts keep
// full precision. Numeric cells become decimal.Decimal values; text cells,
// including digit strings stored as text, stay strings.
func ReadXLSX(r io.Reader, opts Options) (core.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	name := opts.Sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return core.Table{}, fmt.Errorf("invalid workbook: sheet %q not found", name)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return core.Table{}, fmt.Errorf("invalid workbook: read rows: %w", err)
	}
	if len(rows) == 0 {
		return core.Table{}, ErrEmptyFile
	}

	grid := make([][]core.Cell, len(rows))
	for i, row := range rows {
		cells := make([]core.Cell, len(row))
		for j, v := range row {
			cells[j] = typedCell(f, name, i, j, v)
		}
		grid[i] = cells
	}

	return fromGrid(grid, opts.HeaderRow)
}

// typedCell converts numeric cells to decimals. Cells without a type
// attribute are numbers in the workbook format.
func typedCell(f *excelize.File, sheet string, row, col int, raw string) core.Cell {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return v
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return v
	}
	if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return v
}

// SheetNames lists the sheets of a workbook in order.
func SheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// SerialDate converts a spreadsheet date serial into a calendar date.
// Returns false for values that cannot be a date.
func SerialDate(serial float64) (time.Time, bool) {
	if serial <= 0 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

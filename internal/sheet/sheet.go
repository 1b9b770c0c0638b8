// Package sheet turns uploaded spreadsheets into core tables.
//
// Delimited text and XLSX workbooks are supported. Both produce a header
// row plus data rows; rows above the header row are ignored and blank rows
// are dropped. Cells keep their raw form: workbook numbers arrive as
// decimals and everything else as trimmed text.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
)

var (
	// ErrEmptyFile means the input has no header row at the requested position.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnsupportedType means the file extension is not a known spreadsheet kind.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Options controls how a spreadsheet is read.
type Options struct {
	// Delimiter separates fields in delimited text. Zero sniffs the first line
	// and falls back to ';'.
	Delimiter rune

	// HeaderRow is the 1-based row holding the headers. Zero means 1.
	HeaderRow int

	// Sheet names the workbook sheet to read. Empty means the first sheet.
	Sheet string
}

// Kind is a supported input file kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindDelimited
	KindWorkbook
)

// KindOf classifies a file name by extension.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".tsv":
		return KindDelimited
	case ".xlsx", ".xlsm", ".xltx":
		return KindWorkbook
	default:
		return KindUnknown
	}
}

// Read parses r according to the extension of name.
func Read(name string, r io.Reader, opts Options) (core.Table, error) {
	switch KindOf(name) {
	case KindDelimited:
		return ReadCSV(r, opts)
	case KindWorkbook:
		return ReadXLSX(r, opts)
	default:
		return core.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(name))
	}
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts Options) (core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Read(path, f, opts)
}

// fromGrid splits a raw grid into headers and data rows.
func fromGrid(grid [][]core.Cell, headerRow int) (core.Table, error) {
	if headerRow < 1 {
		headerRow = 1
	}
	if len(grid) < headerRow || isEmptyRow(grid[headerRow-1]) {
		return core.Table{}, fmt.Errorf("%w: no header at row %d", ErrEmptyFile, headerRow)
	}

	headerCells := grid[headerRow-1]
	headers := make([]string, len(headerCells))
	for i, c := range headerCells {
		headers[i] = strings.TrimSpace(core.Stringify(c))
	}

	rows := make([][]core.Cell, 0, len(grid)-headerRow)
	for _, row := range grid[headerRow:] {
		if isEmptyRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	return core.Table{Headers: headers, Rows: rows}, nil
}

func isEmptyRow(row []core.Cell) bool {
	for _, v := range row {
		if strings.TrimSpace(core.Stringify(v)) != "" {
			return false
		}
	}
	return true
}

package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/parseos/internal/core"
	"golang.org/x/text/encoding/charmap"
)

// DefaultDelimiter is used when sniffing finds no candidate.
const DefaultDelimiter = ';'

// ParseDelimiter reads a user supplied delimiter. A literal backslash-t and
// "tab" both mean a tab character.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` || strings.EqualFold(s, "tab") {
		return '\t', nil
	}
	d, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || d == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return d, nil
}

// ReadCSV parses delimited text.
//
// A leading BOM is skipped. Input that is not valid UTF-8 is decoded as
// Windows-1252, the encoding spreadsheet tools use for Spanish exports.
// Quotes are lenient and rows may have any number of fields.
func ReadCSV(r io.Reader, opts Options) (core.Table, error) {
	data, err := io.ReadAll(core.NewBOMSkippingReader(r))
	if err != nil {
		return core.Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.Table{}, ErrEmptyFile
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return core.Table{}, fmt.Errorf("invalid csv: decode windows-1252: %w", err)
		}
		data = decoded
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return core.Table{}, fmt.Errorf("invalid csv: %w", err)
	}

	grid := make([][]core.Cell, len(records))
	for i, rec := range records {
		row := make([]core.Cell, len(rec))
		for j, v := range rec {
			row[j] = strings.TrimSpace(v)
		}
		grid[i] = row
	}

	return fromGrid(grid, opts.HeaderRow)
}

// sniffDelimiter picks the most frequent of ';', ',' and tab on the first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := rune(DefaultDelimiter), 0
	for _, c := range []rune{';', ',', '\t'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

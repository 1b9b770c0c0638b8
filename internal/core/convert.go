package core

// convert.go provides the cell normalizers.
//
// These functions handle the messy reality of human-edited spreadsheets:
//   - Amounts with either decimal mark, thousands separators and currency symbols
//   - Dates typed as d/m/yyyy with missing padding or stray text
//   - Tax IDs with dashes and spaces
//   - Names with accents and characters the receiving systems reject
//
// None of them fail. Unparseable input yields a safe default (zero, the
// sentinel date, or an empty string) so that one bad cell never aborts a batch.

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SentinelDate replaces dates that cannot be split into day, month and year.
const SentinelDate = "01/01/1900"

// numericRegex validates a cleaned amount before handing it to decimal.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// maxAmountExponent bounds the decimal exponent of a parsed amount. Rendering
// a value with a larger exponent expands every implied digit.
const maxAmountExponent = 20

// CellAt returns the raw cell at idx, or nil if idx is absent or out of range.
func CellAt(row []Cell, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// CellString returns the trimmed text form of the cell at idx.
func CellString(row []Cell, idx int) string {
	return strings.TrimSpace(Stringify(CellAt(row, idx)))
}

// CellDigits returns only the digits of the cell at idx.
func CellDigits(row []Cell, idx int) string {
	return ParseDigits(CellString(row, idx))
}

// Stringify renders a raw cell the way a spreadsheet would display it.
func Stringify(v Cell) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// CleanCell removes common spreadsheet export artifacts from a header or cell:
// surrounding whitespace, the Excel formula prefix (="...") and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ParseAmount converts a raw cell into a decimal amount.
//
// Numbers pass through. Text may use either ',' or '.' as the decimal mark;
// when both appear, the rightmost one is the decimal mark and the other is
// a thousands separator. A single mark repeated more than once is treated as
// a thousands separator. Currency symbols are ignored and accounting
// parentheses make the amount negative. Anything else, including values
// whose exponent lies outside ±20, yields zero.
func ParseAmount(v Cell) decimal.Decimal {
	return bounded(parseAmount(v))
}

func parseAmount(v Cell) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt(int64(x))
	case decimal.Decimal:
		return x
	case json.Number:
		if d, err := decimal.NewFromString(x.String()); err == nil {
			return d
		}
		return parseAmountText(x.String())
	default:
		return parseAmountText(Stringify(v))
	}
}

func parseAmountText(s string) decimal.Decimal {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = stripCurrency(s)

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if negative && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmountArgentine parses amounts written in Argentine notation, where
// '.' only ever separates thousands and ',' is the decimal mark ("4.463,49").
// Numeric cells pass through unchanged.
func ParseAmountArgentine(v Cell) decimal.Decimal {
	return bounded(parseAmountArgentine(v))
}

func parseAmountArgentine(v Cell) decimal.Decimal {
	text, ok := v.(string)
	if !ok {
		return ParseAmount(v)
	}

	s := stripCurrency(CleanCell(text))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	if !numericRegex.MatchString(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// bounded replaces amounts with an out of range exponent by zero.
func bounded(d decimal.Decimal) decimal.Decimal {
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	return d
}

func stripCurrency(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ' ', '\u00a0':
			return -1
		}
		return r
	}, strings.TrimPrefix(strings.TrimPrefix(s, "ARS"), "USD"))
}

// ParseDigits strips every non-digit character.
func ParseDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NormalizeDate renders a d/m/y string as dd/mm/yyyy.
//
// Input that does not split into exactly three '/' parts yields SentinelDate.
// Day is clamped to [1,31] and month to [1,12]; unreadable or zero parts
// default to day 1, month 1, year 1900; a leading sign makes a part
// unreadable. The year keeps its last four digits.
// There is no calendar check: 31/02/2025 stays 31/02/2025.
func NormalizeDate(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return SentinelDate
	}

	dd := clamp(leadingIntOr(parts[0], 1), 1, 31)
	mm := clamp(leadingIntOr(parts[1], 1), 1, 12)
	yyyy := leadingIntOr(parts[2], 1900)

	return fmt.Sprintf("%02d/%02d/%s", dd, mm, FitLeft(strconv.Itoa(yyyy), 4, '0'))
}

// SortKey converts a d/m/y string into yyyymmdd for ordering.
// Returns 0 if the string does not split into exactly three parts.
func SortKey(raw string) int {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return 0
	}
	d := leadingIntOr(parts[0], 0)
	m := leadingIntOr(parts[1], 0)
	y := leadingIntOr(parts[2], 0)
	return y*10000 + m*100 + d
}

// leadingIntOr reads the leading run of digits of s. Returns def when s
// does not start with a digit, so a signed value counts as unreadable, or
// when the value is zero.
func leadingIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// accentMap covers the Spanish and Portuguese letters seen in counterparty
// names. Decomposition already handles most of them; the table catches
// precomposed forms that survive it.
var accentMap = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N", "Ü", "U",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
	"â", "a", "ê", "e", "î", "i", "ô", "o", "û", "u",
	"ã", "a", "õ", "o", "ç", "c", "Ç", "C",
)

var (
	suffixSA  = regexp.MustCompile(`(?i)\s*S\.\s*A\.?`)
	suffixSRL = regexp.MustCompile(`(?i)\s*S\.\s*R\.\s*L\.?`)
	suffixSAU = regexp.MustCompile(`(?i)\s*S\.\s*A\.\s*U\.?`)
)

// NormalizeLegalSuffix rewrites dotted company-type abbreviations:
// "S.A." becomes " SA", "S.R.L." becomes " SRL", "S.A.U." becomes " SAU".
func NormalizeLegalSuffix(s string) string {
	s = suffixSAU.ReplaceAllString(strings.TrimSpace(s), " SAU")
	s = suffixSRL.ReplaceAllString(s, " SRL")
	s = suffixSA.ReplaceAllString(s, " SA")
	return strings.TrimSpace(s)
}

// SanitizeText reduces a name to printable ASCII.
//
// Legal suffixes are normalized, the text is decomposed and stripped of
// combining marks, the accent table is applied, any remaining byte outside
// 0x20-0x7E becomes a space, and whitespace runs collapse to one space.
func SanitizeText(raw string) string {
	s := NormalizeLegalSuffix(raw)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = accentMap.Replace(s)

	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

package core

// layout.go provides the building blocks of fixed-width records.
//
// Every positional field is produced by one of the Fit functions, so its
// width is exact whatever the input length: over-long values are truncated
// (numbers keep their rightmost digits, text keeps its leftmost characters)
// and short values are padded. A Layout then checks each field against its
// declared width before joining them into a record.

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FitLeft right-justifies s in width characters, padding on the left with
// pad. Longer values keep their last width characters.
func FitLeft(s string, width int, pad byte) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}

// FitRight left-justifies s in width characters, padding on the right with
// pad. Longer values keep their first width characters.
func FitRight(s string, width int, pad byte) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(string(pad), width-len(s))
}

// PadLeft pads s on the left up to width and never truncates.
func PadLeft(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}

// DecimalComma renders d with two decimals and a comma mark: "1234,50".
func DecimalComma(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatAmount renders d as a width-character numeric field with two
// decimals and a comma mark, right-justified with pad. With a '0' pad the
// result is the "Number(13+1+2)" shape used by AGIP: 0000000001234,50.
func FormatAmount(d decimal.Decimal, width int, pad byte) string {
	body := DecimalComma(d.Abs())
	if !d.IsNegative() {
		return FitLeft(body, width, pad)
	}
	if pad == '0' {
		return "-" + FitLeft(body, width-1, pad)
	}
	return FitLeft("-"+body, width, pad)
}

// FormatRate renders a percentage as "II,DD" where each part is capped at 99.
func FormatRate(rate decimal.Decimal) string {
	whole := rate.Floor()
	frac := rate.Sub(whole).Mul(hundred).Round(0)

	i := whole.IntPart()
	if i > 99 {
		i = 99
	}
	f := frac.IntPart()
	if f > 99 {
		f = 99
	}
	return fmt.Sprintf("%02d,%02d", i, f)
}

// Column is one positional field of a record layout.
type Column struct {
	Name  string
	Width int
}

// Layout is an ordered list of positional fields.
type Layout struct {
	Name    string
	Columns []Column
}

// Width returns the total record width.
func (l Layout) Width() int {
	n := 0
	for _, c := range l.Columns {
		n += c.Width
	}
	return n
}

// FieldWidthError reports a field value whose length differs from its column.
type FieldWidthError struct {
	Layout string
	Column string
	Want   int
	Got    int
}

func (e *FieldWidthError) Error() string {
	return fmt.Sprintf("line length mismatch: %s field %q has %d characters, want %d",
		e.Layout, e.Column, e.Got, e.Want)
}

// Render joins values into one record, checking each against its column.
func (l Layout) Render(values ...string) (string, error) {
	if len(values) != len(l.Columns) {
		return "", fmt.Errorf("%s layout: got %d fields, want %d", l.Name, len(values), len(l.Columns))
	}
	var b strings.Builder
	b.Grow(l.Width())
	for i, c := range l.Columns {
		if len(values[i]) != c.Width {
			return "", &FieldWidthError{Layout: l.Name, Column: c.Name, Want: c.Width, Got: len(values[i])}
		}
		b.WriteString(values[i])
	}
	return b.String(), nil
}

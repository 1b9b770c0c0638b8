package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLeft(t *testing.T) {
	assert.Equal(t, "00042", FitLeft("42", 5, '0'))
	assert.Equal(t, "45678", FitLeft("12345678", 5, '0'))
	assert.Equal(t, "   ab", FitLeft("ab", 5, ' '))
	assert.Equal(t, "", FitLeft("abc", 0, ' '))
}

func TestFitRight(t *testing.T) {
	assert.Equal(t, "ab   ", FitRight("ab", 5, ' '))
	assert.Equal(t, "abcde", FitRight("abcdefgh", 5, ' '))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "00001", PadLeft("1", 5, '0'))
	assert.Equal(t, "1234567", PadLeft("1234567", 5, '0'), "never truncates")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		pad   byte
		want  string
	}{
		{name: "zero padded", in: "1234.5", width: 16, pad: '0', want: "0000000001234,50"},
		{name: "zero", in: "0", width: 16, pad: '0', want: "0000000000000,00"},
		{name: "negative zero padded", in: "-1234.5", width: 16, pad: '0', want: "-000000001234,50"},
		{name: "space padded", in: "1234.5", width: 16, pad: ' ', want: "         1234,50"},
		{name: "negative space padded", in: "-5", width: 8, pad: ' ', want: "   -5,00"},
		{name: "rounds half up", in: "0.125", width: 6, pad: ' ', want: "  0,13"},
		{name: "overflow keeps rightmost", in: "12345678901234567", width: 16, pad: '0', want: "5678901234567,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(dec(tt.in), tt.width, tt.pad)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.width)
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "01,00", FormatRate(dec("1")))
	assert.Equal(t, "02,50", FormatRate(dec("2.5")))
	assert.Equal(t, "00,75", FormatRate(dec("0.75")))
	assert.Equal(t, "00,01", FormatRate(dec("0.01")))
	assert.Equal(t, "99,00", FormatRate(dec("150")))
	assert.Equal(t, "00,00", FormatRate(dec("0")))
}

func TestDecimalComma(t *testing.T) {
	assert.Equal(t, "1234,50", DecimalComma(dec("1234.5")))
	assert.Equal(t, "0,00", DecimalComma(dec("0")))
	assert.Equal(t, "-3,10", DecimalComma(dec("-3.1")))
}

func TestLayout_Render(t *testing.T) {
	l := Layout{Name: "demo", Columns: []Column{{"code", 2}, {"amount", 5}}}
	require.Equal(t, 7, l.Width())

	line, err := l.Render("01", "00,50")
	require.NoError(t, err)
	assert.Equal(t, "0100,50", line)

	_, err = l.Render("01", "0,50")
	var werr *FieldWidthError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "amount", werr.Column)
	assert.Equal(t, 5, werr.Want)
	assert.Equal(t, 4, werr.Got)
	assert.Equal(t, "LEN001", MapError(err).Code)

	_, err = l.Render("01")
	assert.Error(t, err)
}

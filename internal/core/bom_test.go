package core

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "file with BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, "cuit;fecha"...), want: "cuit;fecha"},
		{name: "file without BOM", input: []byte("cuit;fecha"), want: "cuit;fecha"},
		{name: "empty file", input: []byte{}, want: ""},
		{name: "only BOM", input: []byte{0xEF, 0xBB, 0xBF}, want: ""},
		{name: "partial BOM kept", input: []byte{0xEF, 0xBB, 'a'}, want: string([]byte{0xEF, 0xBB, 'a'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewBOMSkippingReader(bytes.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, "1029", StripBOM("\ufeff1029"))
	assert.Equal(t, "1029", StripBOM("1029"))
	assert.Equal(t, "", StripBOM(""))
}

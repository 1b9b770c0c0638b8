package formats

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sicoreHeaders = []string{"fecha", "num_comp", "punto_venta", "cuit", "valor", "reten"}

func TestSicore(t *testing.T) {
	res := convert(t, "sicore-ganancias", core.Sources{core.SourceMain: {
		Headers: sicoreHeaders,
		Rows: rows(
			[]core.Cell{"20/03/2025", "123", "0002", "20-12345678-9", "1.500,50", "45,02"},
			[]core.Cell{"05/03/2025", "9", "1", "27111111114", "1000", "20"},
		),
	}})

	require.True(t, strings.HasSuffix(res.Text, "\r\n"))
	lines := strings.Split(strings.TrimSuffix(res.Text, "\r\n"), "\r\n")
	require.Len(t, lines, 2)

	first := "01" + "05/03/2025" +
		"0000100000009   " +
		"         1000,00" +
		"0217" + "078" + "1" +
		"       1000,00" +
		"05/03/2025" + "01" + "0" +
		"         20,00" +
		"  0,00" + strings.Repeat(" ", 10) +
		"80" + "27111111114" + strings.Repeat(" ", 9) +
		strings.Repeat("0", 18) + "2025250301"

	assert.Equal(t, first, lines[0])
	assert.Len(t, first, SicoreLineLength)

	second := lines[1]
	assert.Len(t, second, SicoreLineLength)
	assert.Equal(t, "20/03/2025", field(t, sicoreLayout, second, "fecha_emision"))
	assert.Equal(t, "0000000002123   ", field(t, sicoreLayout, second, "nro_comprobante"))
	assert.Equal(t, "         1500,50", field(t, sicoreLayout, second, "importe_comprobante"))
	assert.Equal(t, "         45,02", field(t, sicoreLayout, second, "importe_retencion"))
	assert.Equal(t, "20123456789         ", field(t, sicoreLayout, second, "nro_documento"))
	assert.Equal(t, strings.Repeat("0", 18)+"2025250302", field(t, sicoreLayout, second, "nro_certificado"),
		"certificates are stamped with the period of the first row")
}

func TestSicore_NoDateColumn(t *testing.T) {
	res := convert(t, "sicore-ganancias", core.Sources{core.SourceMain: {
		Headers: []string{"cuit", "valor", "reten"},
		Rows:    rows([]core.Cell{"20111111111", "100", "2"}),
	}})

	line := strings.TrimSuffix(res.Text, "\r\n")
	assert.Equal(t, core.SentinelDate, field(t, sicoreLayout, line, "fecha_emision"))
	assert.Equal(t, strings.Repeat("0", 18)+"2025250101", field(t, sicoreLayout, line, "nro_certificado"))
	assert.Equal(t, "0000000000000   ", field(t, sicoreLayout, line, "nro_comprobante"))
}

func TestEncodeSicore_ExplicitPeriod(t *testing.T) {
	lines, err := EncodeSicore([]core.CanonicalRow{{Fecha: "15/03/2025"}}, "01/12/2024")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("0", 18)+"2024241201", field(t, sicoreLayout, lines[0], "nro_certificado"))
}

func TestVoucherNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "0000000000000   "},
		{"7", "0000700000000   "},
		{"0001-00001234", "0000000001234   "},
		{"3-45", "0000300000045   "},
	}

	for _, tt := range tests {
		got := voucherNumber(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Len(t, got, 16)
	}
}

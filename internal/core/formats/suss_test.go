package formats

import (
	"testing"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuss(t *testing.T) {
	res := convert(t, "suss", core.Sources{core.SourceMain: {
		Headers: []string{"CUIT", "Razon", "Periodo", "Regimen", "Certificado", "Fecha", "Importe"},
		Rows: rows(
			[]core.Cell{" 20123456789 ", "ACME", "03/2025", "755", "CERT001", "15/03/2025", "1234.5"},
			[]core.Cell{"27111111114", "Beta", "03/2025", "755", "CERT002", "16/03/2025", 99.999},
		),
	}})

	assert.Equal(t,
		"2012345678915/03/2025CERT001        1234.50\n"+
			"2711111111416/03/2025CERT002         100.00",
		res.Text)
}

func TestSuss_IgnoresHeaders(t *testing.T) {
	res := convert(t, "suss", core.Sources{core.SourceMain: {
		Headers: []string{"a"},
		Rows:    rows([]core.Cell{"20123456789"}),
	}})

	assert.Equal(t, "20123456789"+"           0.00", res.Text, "missing cells read as empty")
}

func TestEncodeSuss(t *testing.T) {
	lines := EncodeSuss([]SussRecord{{
		CUIT:        "20123456789",
		Fecha:       "01/03/2025",
		Certificado: "1",
		Importe:     decimal.RequireFromString("123456789012345.678"),
	}})

	assert.Equal(t, []string{"2012345678901/03/20251123456789012345.68"}, lines, "long amounts are never truncated")
}

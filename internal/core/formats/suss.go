package formats

import (
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/shopspring/decimal"
)

func init() {
	registerSuss()
}

// Positional columns of the SUSS withholdings sheet.
const (
	sussColCUIT        = 0
	sussColCertificado = 4
	sussColFecha       = 5
	sussColImporte     = 6
)

// SussRecord is one SUSS withholding.
type SussRecord struct {
	CUIT        string
	Fecha       string
	Certificado string
	Importe     decimal.Decimal
}

func registerSuss() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "suss",
			Group:       "AFIP",
			Label:       "SUSS",
			Description: "Retenciones de seguridad social, columnas por posición",
		},
		Transform: func(in core.Input) ([]string, error) {
			t := in.Table(core.SourceMain)
			if t.Empty() {
				return nil, nil
			}
			return EncodeSuss(sussRecords(t)), nil
		},
	})
}

// sussRecords reads columns by position; headers are not consulted.
func sussRecords(t core.Table) []SussRecord {
	records := make([]SussRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, SussRecord{
			CUIT:        core.CellString(row, sussColCUIT),
			Fecha:       core.CellString(row, sussColFecha),
			Certificado: core.CellString(row, sussColCertificado),
			Importe:     core.ParseAmount(core.CellAt(row, sussColImporte)),
		})
	}
	return records
}

// EncodeSuss concatenates cuit, date, certificate and the amount right
// aligned in 15 characters with a dot decimal mark.
func EncodeSuss(records []SussRecord) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		var b strings.Builder
		b.WriteString(r.CUIT)
		b.WriteString(r.Fecha)
		b.WriteString(r.Certificado)
		b.WriteString(core.PadLeft(r.Importe.StringFixed(2), 15, ' '))
		lines = append(lines, b.String())
	}
	return lines
}

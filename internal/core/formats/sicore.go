package formats

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
)

func init() {
	registerSicore()
}

// SicoreLineLength is the width of one SICORE withholding record.
const SicoreLineLength = 159

// DefaultSicorePeriod stamps certificate numbers when the source has no
// date column.
const DefaultSicorePeriod = "01/01/2025"

var sicoreLayout = core.Layout{
	Name: "sicore",
	Columns: []core.Column{
		{Name: "codigo_comprobante", Width: 2},
		{Name: "fecha_emision", Width: 10},
		{Name: "nro_comprobante", Width: 16},
		{Name: "importe_comprobante", Width: 16},
		{Name: "codigo_impuesto", Width: 4},
		{Name: "codigo_regimen", Width: 3},
		{Name: "codigo_operacion", Width: 1},
		{Name: "base_calculo", Width: 14},
		{Name: "fecha_retencion", Width: 10},
		{Name: "codigo_condicion", Width: 2},
		{Name: "sujeto_suspendido", Width: 1},
		{Name: "importe_retencion", Width: 14},
		{Name: "porcentaje_exclusion", Width: 6},
		{Name: "fecha_boletin", Width: 10},
		{Name: "tipo_documento", Width: 2},
		{Name: "nro_documento", Width: 20},
		{Name: "nro_certificado", Width: 28},
	},
}

var sicoreSpecs = core.CanonicalSpecs([]core.Field{
	core.FieldFecha,
	core.FieldNumComp,
	core.FieldPuntoVenta,
	core.FieldCUIT,
	core.FieldValor,
	core.FieldReten,
})

func registerSicore() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "sicore-ganancias",
			Group:       "AFIP",
			Label:       "SICORE Ganancias",
			Description: "Retenciones de Ganancias, régimen 078",
			LineLength:  SicoreLineLength,
			Separator:   "\r\n",
			Trailing:    true,
		},
		Transform: func(in core.Input) ([]string, error) {
			t := in.Table(core.SourceMain)
			if t.Empty() {
				return nil, nil
			}
			idx := in.Resolve(t.Headers, sicoreSpecs)

			period := ""
			if !idx.Has(core.FieldFecha) {
				period = DefaultSicorePeriod
			}
			return EncodeSicore(core.CanonicalizeSingle(t, idx, nil), period)
		},
	})
}

// EncodeSicore renders rows as SICORE records in date order.
//
// Certificate numbers are stamped with the year and month of period,
// followed by the row sequence. An empty period means the date of the
// first sorted row.
func EncodeSicore(rows []core.CanonicalRow, period string) ([]string, error) {
	sorted := core.SortRows(rows)
	if period == "" && len(sorted) > 0 {
		period = sorted[0].Fecha
	}
	if period == "" {
		period = DefaultSicorePeriod
	}
	stamp := certificateStamp(core.NormalizeDate(period))

	lines := make([]string, 0, len(sorted))
	for i, r := range sorted {
		cert := core.FitLeft(stamp+core.PadLeft(strconv.Itoa(core.Sequence(i)), 2, '0'), 28, '0')
		line, err := sicoreLine(r, cert)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func sicoreLine(r core.CanonicalRow, cert string) (string, error) {
	fecha := core.FitRight(r.Fecha, 10, ' ')
	return sicoreLayout.Render(
		"01",
		fecha,
		voucherNumber(r.PuntoVenta+r.NumComp),
		core.FormatAmount(r.Valor, 16, ' '),
		"0217",
		"078",
		"1",
		core.FormatAmount(r.Valor, 14, ' '),
		fecha,
		"01",
		"0",
		core.FormatAmount(r.Reten, 14, ' '),
		"  0,00",
		strings.Repeat(" ", 10),
		"80",
		core.FitRight(r.CUIT, 20, ' '),
		cert,
	)
}

// voucherNumber builds the 16-character voucher reference: the first digit
// of the point of sale and number, then the last five of the rest.
func voucherNumber(raw string) string {
	digits := core.ParseDigits(raw)
	if digits == "" {
		digits = "0"
	}
	ref := "0000" + digits[:1] + "000" + core.FitLeft(digits[1:], 5, '0') + "   "
	return core.FitRight(ref, 16, ' ')
}

// certificateStamp returns yyyy+yy+mm for a date already in dd/mm/yyyy form.
func certificateStamp(fecha string) string {
	parts := strings.Split(fecha, "/")
	year := parts[2]
	return year + year[len(year)-2:] + parts[1]
}

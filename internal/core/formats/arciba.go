package formats

import (
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/shopspring/decimal"
)

func init() {
	registerArciba()
	registerArcibaDrogueria()
}

// ArcibaLineLength is the width of one e-ARCIBA withholding record.
const ArcibaLineLength = 226

var arcibaLayout = core.Layout{
	Name: "arciba",
	Columns: []core.Column{
		{Name: "tipo_operacion", Width: 1},
		{Name: "codigo_norma", Width: 3},
		{Name: "fecha_retencion", Width: 10},
		{Name: "tipo_comprobante", Width: 2},
		{Name: "letra", Width: 1},
		{Name: "nro_comprobante", Width: 16},
		{Name: "fecha_comprobante", Width: 10},
		{Name: "monto_comprobante", Width: 16},
		{Name: "nro_certificado", Width: 16},
		{Name: "tipo_documento", Width: 1},
		{Name: "nro_documento", Width: 11},
		{Name: "situacion_iibb", Width: 1},
		{Name: "nro_iibb", Width: 11},
		{Name: "situacion_iva", Width: 1},
		{Name: "razon_social", Width: 30},
		{Name: "importe_otros", Width: 16},
		{Name: "importe_iva", Width: 16},
		{Name: "monto_sujeto", Width: 16},
		{Name: "alicuota", Width: 5},
		{Name: "retencion", Width: 16},
		{Name: "monto_total", Width: 16},
		{Name: "aceptacion", Width: 1},
		{Name: "fecha_aceptacion", Width: 10},
	},
}

var (
	retencionSpecs  = core.CanonicalSpecs(core.CanonicalFields, core.FieldFecha, core.FieldValor, core.FieldReten)
	percepcionSpecs = core.CanonicalSpecs(core.CanonicalFields, core.FieldFecha, core.FieldValor, core.FieldAlicuota)
)

const dualHint = "Los archivos deben tener los encabezados: fecha, interno, num_comp, razon_social, cuit, valor, reten (retenciones) y alicuota (percepciones)."

func registerArciba() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "arciba",
			Group:       "AGIP",
			Label:       "e-ARCIBA",
			Description: "Retenciones IIBB CABA desde una planilla con encabezados canónicos",
			LineLength:  ArcibaLineLength,
			Trailing:    true,
		},
		Transform: func(in core.Input) ([]string, error) {
			t := in.Table(core.SourceMain)
			if t.Empty() {
				return nil, nil
			}
			idx := in.Resolve(t.Headers, core.CanonicalSpecs(core.CanonicalFields))
			return EncodeArciba(core.CanonicalizeSingle(t, idx, core.AgipRates))
		},
	})
}

func registerArcibaDrogueria() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "arciba-drogueria-vip",
			Group:       "AGIP",
			Label:       "e-ARCIBA Droguería VIP",
			Description: "Retenciones y percepciones IIBB CABA con alícuotas ajustadas al padrón",
			Sources:     []string{core.SourceRetenciones, core.SourcePercepciones},
			LineLength:  ArcibaLineLength,
			Trailing:    true,
			Required:    append(core.RequiredLabels(retencionSpecs), string(core.FieldAlicuota)),
		},
		Transform: func(in core.Input) ([]string, error) {
			retIdx, err := core.RequireColumns(in, core.SourceRetenciones, retencionSpecs,
				"Faltan columnas en el archivo de retenciones.", dualHint)
			if err != nil {
				return nil, err
			}
			percIdx, err := core.RequireColumns(in, core.SourcePercepciones, percepcionSpecs,
				"Faltan columnas en el archivo de percepciones.", dualHint)
			if err != nil {
				return nil, err
			}

			rows := core.CanonicalizeDual(
				in.Table(core.SourceRetenciones), retIdx,
				in.Table(core.SourcePercepciones), percIdx,
			)
			return EncodeArciba(rows)
		},
	})
}

// EncodeArciba renders rows as e-ARCIBA withholding records in date order.
func EncodeArciba(rows []core.CanonicalRow) ([]string, error) {
	sorted := core.SortRows(rows)
	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		line, err := arcibaLine(r)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func arcibaLine(r core.CanonicalRow) (string, error) {
	amount := func(v decimal.Decimal) string { return core.FormatAmount(v, 16, '0') }

	cuit := "00000000000"
	if r.CUIT != "" {
		cuit = core.FitLeft(r.CUIT, 11, '0')
	}

	condicion := "1"
	if c := core.SanitizeText(r.Interno); c != "" {
		condicion = c[:1]
	}

	retencion := amount(r.Reten)

	return arcibaLayout.Render(
		"1",
		"029",
		r.Fecha,
		"01",
		"A",
		core.FitLeft(core.ParseDigits(r.NumComp), 16, '0'),
		r.Fecha,
		amount(r.Valor),
		strings.Repeat(" ", 16),
		"3",
		cuit,
		"4",
		"00000000000",
		condicion,
		arcibaName(r.RazonSocial),
		amount(decimal.Zero),
		amount(decimal.Zero),
		amount(r.Valor),
		core.FormatRate(r.Alicuota),
		retencion,
		retencion,
		" ",
		strings.Repeat(" ", 10),
	)
}

// arcibaName sanitizes a counterparty name and fits it to 30 characters.
// A trailing period left over from an abbreviation is dropped.
func arcibaName(raw string) string {
	name := core.SanitizeText(raw)
	name = strings.TrimSpace(strings.TrimSuffix(name, "."))
	return core.FitRight(name, 30, ' ')
}

package formats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/JonMunkholm/parseos/internal/sheet"
	"github.com/shopspring/decimal"
)

func init() {
	registerIVA()
	registerCuadroCompras()
}

// IVACode is the perception code reported when the source leaves it blank.
const IVACode = "493"

// IVARecord is one perception row of the IVA import file. Fecha is already
// yyyy-mm-dd and Importe already carries a comma decimal mark.
type IVARecord struct {
	Codigo     string
	CUIT       string
	Fecha      string
	PuntoVenta string
	NumComp    string
	Importe    string
}

var ivaSpecs = []core.FieldSpec{
	{
		Field:   core.FieldCodigo,
		Label:   "493",
		Aliases: []string{"493", "Col493", "Codigo", "Código"},
		Keyword: "Col493",
	},
	{
		Field:    core.FieldCUIT,
		Label:    "CUIT",
		Aliases:  []string{"CUIT", "Cuit", "C.U.I.T.", "Cuit Proveedor", "Proveedor CUIT"},
		Keyword:  "C.U.I.T.",
		Required: true,
	},
	{
		Field:    core.FieldFecha,
		Label:    "FECHA PERCEPCION",
		Aliases:  []string{"FECHA PERCEPCION", "FECHA", "Fecha", "FECHA EMISION", "Fecha Emisión", "Fecha de comprobante", "Fecha Comprobante"},
		Keyword:  "FECHA",
		Required: true,
	},
	{
		Field:   core.FieldPuntoVenta,
		Label:   "PUNTO DE VENTA",
		Aliases: []string{"PUNTO DE VENTA", "Punto de Venta", "Pto. Venta", "Punto Venta", "PV"},
		Keyword: "PUNTO",
	},
	{
		Field:   core.FieldNumComp,
		Label:   "NUMERO DE COMPROBANTE",
		Aliases: []string{"NUMERO DE COMPROBANTE", "Número de Comprobante", "Nº Comprobante", "Numero Comprobante", "Número", "Comprobante"},
		Keyword: "NUMERO",
	},
	{
		Field:    core.FieldImporte,
		Label:    "IMPORTE",
		Aliases:  []string{"IMPORTE", "Importe", "IMPORTE TOTAL", "Monto", "Total", "Importe Total"},
		Keyword:  "IMPORTE",
		Required: true,
	},
}

// cuadroSpecs match the purchases summary sheet, whose headers sit on row 5.
var cuadroSpecs = []core.FieldSpec{
	cuadroSpec(core.FieldFecha, "FECHA", "FECHA", "Fecha"),
	cuadroSpec(core.FieldPuntoVenta, "PTO. VTA.", "PTO. VTA.", "PTO. VTA", "Pto. Vta.", "Punto de Venta"),
	cuadroSpec(core.FieldNumComp, "NRO. COMP.", "NRO. COMP.", "NRO. COMP", "Nro. Comp.", "Número de Comprobante", "NUMERO DE COMPROBANTE"),
	cuadroSpec(core.FieldCUIT, "CUIT", "CUIT", "Cuit"),
	cuadroSpec(core.FieldImporte, "PERC. IVA", "PERC. IVA", "PERC. IVA.", "PERC IVA", "Perc. Iva", "Percepción IVA"),
}

var keywordSplit = regexp.MustCompile(`[\s.]`)

// cuadroSpec builds a required spec whose keyword is the first word of the
// first alias.
func cuadroSpec(f core.Field, label string, aliases ...string) core.FieldSpec {
	return core.FieldSpec{
		Field:    f,
		Label:    label,
		Aliases:  aliases,
		Keyword:  keywordSplit.Split(aliases[0], 2)[0],
		Required: true,
	}
}

func registerIVA() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "iva",
			Group:       "AFIP",
			Label:       "Percepciones IVA",
			Description: "Importación de percepciones de IVA sufridas, separada por punto y coma",
			Required:    core.RequiredLabels(ivaSpecs),
		},
		Transform: func(in core.Input) ([]string, error) {
			t := in.Table(core.SourceMain)
			if len(t.Headers) == 0 {
				return nil, nil
			}
			idx, err := core.RequireColumns(in, core.SourceMain, ivaSpecs,
				"Faltan columnas requeridas en el archivo.",
				"Se esperan columnas como: CUIT, FECHA (o FECHA PERCEPCION), IMPORTE. Pueden tener nombres similares (ej. Cuit, Fecha Emisión, Importe Total).")
			if err != nil {
				return nil, err
			}
			return EncodeIVA(ivaRecords(t, idx)), nil
		},
	})
}

func registerCuadroCompras() {
	core.Register(core.FormatDefinition{
		Info: core.FormatInfo{
			Key:         "iva-cuadro-compras",
			Group:       "AFIP",
			Label:       "Percepciones IVA (cuadro de compras)",
			Description: "Percepciones de IVA tomadas del cuadro de compras, encabezados en la fila 5",
			HeaderRow:   5,
			Required:    core.RequiredLabels(cuadroSpecs),
		},
		Transform: func(in core.Input) ([]string, error) {
			t := in.Table(core.SourceMain)
			if len(t.Headers) == 0 {
				return nil, nil
			}
			idx, err := core.RequireColumns(in, core.SourceMain, cuadroSpecs,
				"Faltan columnas del cuadro de compras.",
				"El archivo debe tener encabezados en la fila 5: FECHA, PTO. VTA., NRO. COMP., CUIT, PERC. IVA.")
			if err != nil {
				return nil, err
			}
			return EncodeIVA(cuadroRecords(t, idx)), nil
		},
	})
}

func ivaRecords(t core.Table, idx core.HeaderIndex) []IVARecord {
	records := make([]IVARecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		importe := ""
		if raw := core.CellString(row, idx.Col(core.FieldImporte)); raw != "" {
			importe = core.DecimalComma(ivaAmount(core.CellAt(row, idx.Col(core.FieldImporte))))
		}
		records = append(records, IVARecord{
			Codigo:     core.CellString(row, idx.Col(core.FieldCodigo)),
			CUIT:       core.CellString(row, idx.Col(core.FieldCUIT)),
			Fecha:      FormatIVADate(core.CellAt(row, idx.Col(core.FieldFecha))),
			PuntoVenta: core.CellString(row, idx.Col(core.FieldPuntoVenta)),
			NumComp:    core.CellString(row, idx.Col(core.FieldNumComp)),
			Importe:    importe,
		})
	}
	return records
}

// thousandsOnly matches dot-grouped integers such as "1.000" or "12.345.678".
var thousandsOnly = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

// ivaAmount reads an importe cell. Text grouped in thousands with dots is
// Argentine notation, so "1.000" is one thousand.
func ivaAmount(c core.Cell) decimal.Decimal {
	if s, ok := c.(string); ok && thousandsOnly.MatchString(core.CleanCell(s)) {
		return core.ParseAmountArgentine(s)
	}
	return core.ParseAmount(c)
}

// cuadroRecords skips the totals row and rows without a perception amount.
func cuadroRecords(t core.Table, idx core.HeaderIndex) []IVARecord {
	var records []IVARecord
	for _, row := range t.Rows {
		if strings.Contains(strings.ToUpper(core.CellString(row, 0)), "TOTALES") {
			continue
		}
		if core.CellString(row, idx.Col(core.FieldImporte)) == "" {
			continue
		}
		perc := core.ParseAmountArgentine(core.CellAt(row, idx.Col(core.FieldImporte)))
		if perc.IsZero() {
			continue
		}
		records = append(records, IVARecord{
			Codigo:     IVACode,
			CUIT:       core.CellString(row, idx.Col(core.FieldCUIT)),
			Fecha:      FormatIVADate(core.CellAt(row, idx.Col(core.FieldFecha))),
			PuntoVenta: core.CellString(row, idx.Col(core.FieldPuntoVenta)),
			NumComp:    core.CellString(row, idx.Col(core.FieldNumComp)),
			Importe:    core.DecimalComma(perc),
		})
	}
	return records
}

// EncodeIVA renders records as semicolon separated lines:
// code;cuit;;date;1;PPPPP-NNNNNNNN;amount
func EncodeIVA(records []IVARecord) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		code := r.Codigo
		if code == "" {
			code = IVACode
		}
		voucher := core.PadLeft(r.PuntoVenta, 5, '0') + "-" + core.PadLeft(r.NumComp, 8, '0')

		fields := []string{code, r.CUIT, "", r.Fecha, "1", voucher, r.Importe}
		for i, f := range fields {
			fields[i] = escapeField(f)
		}
		lines = append(lines, strings.Join(fields, ";"))
	}
	return lines
}

// escapeField trims a value and quotes it when it holds the separator,
// a quote or a newline. Embedded quotes are doubled.
func escapeField(v string) string {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, ";\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

var (
	dmyDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	ymdDate = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
)

// FormatIVADate renders a date cell as yyyy-mm-dd.
//
// Day-first dates are reordered, year-first dates get dash separators and
// positive numbers are read as spreadsheet serial dates. Anything else is
// passed through unchanged.
func FormatIVADate(v core.Cell) string {
	s := strings.TrimSpace(core.Stringify(v))
	if s == "" {
		return ""
	}
	if m := dmyDate.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + core.PadLeft(m[2], 2, '0') + "-" + core.PadLeft(m[1], 2, '0')
	}
	if ymdDate.MatchString(s) {
		return strings.NewReplacer("/", "-").Replace(s)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 {
		if t, ok := sheet.SerialDate(n); ok {
			return t.Format("2006-01-02")
		}
	}
	return s
}

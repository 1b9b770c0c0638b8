package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CanonicalFields is the canonical column order of a withholding table.
var CanonicalFields = []Field{
	FieldFecha,
	FieldInterno,
	FieldNumComp,
	FieldRazonSocial,
	FieldCUIT,
	FieldValor,
	FieldReten,
	FieldAlicuota,
}

// CanonicalSpecs returns exact-name specs for fields, marking the ones listed
// in required.
func CanonicalSpecs(fields []Field, required ...Field) []FieldSpec {
	req := make(map[Field]bool, len(required))
	for _, f := range required {
		req[f] = true
	}
	specs := make([]FieldSpec, len(fields))
	for i, f := range fields {
		specs[i] = CanonicalSpec(f, req[f])
	}
	return specs
}

// CanonicalizeSingle reads an already-canonical table.
//
// Rows with a zero valor are kept. Reten is taken as read. The rate comes
// from the alicuota column when present, otherwise it is derived as
// reten/valor*100; either way it is snapped to rates. Key orders by the date
// as written in the source.
func CanonicalizeSingle(t Table, idx HeaderIndex, rates RateCatalog) []CanonicalRow {
	out := make([]CanonicalRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		rawFecha := CellString(row, idx.Col(FieldFecha))
		valor := ParseAmount(CellAt(row, idx.Col(FieldValor)))
		reten := ParseAmount(CellAt(row, idx.Col(FieldReten)))

		var rate decimal.Decimal
		switch {
		case idx.Has(FieldAlicuota):
			rate = rates.Snap(ParseAmount(CellAt(row, idx.Col(FieldAlicuota))))
		case !valor.IsZero():
			rate = rates.Snap(reten.Div(valor).Mul(hundred))
		default:
			rate = rates.Snap(decimal.Zero)
		}

		out = append(out, CanonicalRow{
			Fecha:       NormalizeDate(rawFecha),
			Interno:     CellString(row, idx.Col(FieldInterno)),
			NumComp:     CellString(row, idx.Col(FieldNumComp)),
			PuntoVenta:  CellString(row, idx.Col(FieldPuntoVenta)),
			RazonSocial: CellString(row, idx.Col(FieldRazonSocial)),
			CUIT:        CellDigits(row, idx.Col(FieldCUIT)),
			Valor:       valor,
			Reten:       reten,
			Alicuota:    rate,
			Key:         SortKey(rawFecha),
		})
	}
	return out
}

// CanonicalizeRetenciones reads a withholdings sheet. The sheet has no rate
// column: the rate is derived from reten/valor*100 and snapped to
// RetencionRates, then reten is recomputed from the snapped rate.
// Rows whose valor is zero are dropped.
func CanonicalizeRetenciones(t Table, idx HeaderIndex) []CanonicalRow {
	return canonicalizeSnapped(t, idx, func(row []Cell, valor decimal.Decimal) decimal.Decimal {
		reten := ParseAmount(CellAt(row, idx.Col(FieldReten)))
		return RetencionRates.Snap(reten.Div(valor).Mul(hundred))
	})
}

// CanonicalizePercepciones reads a perceptions sheet. The alicuota column
// holds a fraction; it is scaled to percent and snapped to PercepcionRates,
// then reten is recomputed from the snapped rate.
// Rows whose valor is zero are dropped.
func CanonicalizePercepciones(t Table, idx HeaderIndex) []CanonicalRow {
	return canonicalizeSnapped(t, idx, func(row []Cell, _ decimal.Decimal) decimal.Decimal {
		fraction := ParseAmount(CellAt(row, idx.Col(FieldAlicuota)))
		return PercepcionRates.Snap(fraction.Mul(hundred))
	})
}

// CanonicalizeDual concatenates withholding rows followed by perception rows.
func CanonicalizeDual(ret Table, retIdx HeaderIndex, perc Table, percIdx HeaderIndex) []CanonicalRow {
	rows := CanonicalizeRetenciones(ret, retIdx)
	return append(rows, CanonicalizePercepciones(perc, percIdx)...)
}

func canonicalizeSnapped(t Table, idx HeaderIndex, rateOf func(row []Cell, valor decimal.Decimal) decimal.Decimal) []CanonicalRow {
	out := make([]CanonicalRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		valor := ParseAmount(CellAt(row, idx.Col(FieldValor)))
		if valor.IsZero() {
			continue
		}

		rate := rateOf(row, valor)
		fecha := NormalizeDate(CellString(row, idx.Col(FieldFecha)))

		out = append(out, CanonicalRow{
			Fecha:       fecha,
			Interno:     CellString(row, idx.Col(FieldInterno)),
			NumComp:     CellString(row, idx.Col(FieldNumComp)),
			PuntoVenta:  CellString(row, idx.Col(FieldPuntoVenta)),
			RazonSocial: CellString(row, idx.Col(FieldRazonSocial)),
			CUIT:        CellDigits(row, idx.Col(FieldCUIT)),
			Valor:       valor,
			Reten:       RecomputeReten(valor, rate),
			Alicuota:    rate,
			Key:         SortKey(fecha),
		})
	}
	return out
}

// RecomputeReten returns round(valor * rate / 100, 2).
func RecomputeReten(valor, rate decimal.Decimal) decimal.Decimal {
	return valor.Mul(rate).Div(hundred).Round(2)
}

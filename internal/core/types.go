// Package core provides the canonicalization and fixed-format encoding engine.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"github.com/shopspring/decimal"
)

// Cell is a raw value as supplied by the caller: string, json.Number,
// float64, an integer kind, bool, or nil.
type Cell = any

// Table is a rectangular grid as produced by the sheet reader or decoded
// from a request body. Rows may be ragged; missing cells read as empty.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// Empty reports whether the table has nothing to encode.
func (t Table) Empty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// Source names used as keys in Sources.
const (
	SourceMain         = "main"
	SourceRetenciones  = "retenciones"
	SourcePercepciones = "percepciones"
)

// Sources holds the input tables of one conversion, keyed by source name.
type Sources map[string]Table

// Field is a semantic column of the canonical schema.
type Field string

const (
	FieldFecha       Field = "fecha"
	FieldInterno     Field = "interno"
	FieldNumComp     Field = "num_comp"
	FieldPuntoVenta  Field = "punto_venta"
	FieldRazonSocial Field = "razon_social"
	FieldCUIT        Field = "cuit"
	FieldValor       Field = "valor"
	FieldReten       Field = "reten"
	FieldAlicuota    Field = "alicuota"
	FieldCodigo      Field = "codigo"
	FieldImporte     Field = "importe"
)

// FieldSpec describes how a semantic field is found in a header row.
type FieldSpec struct {
	Field    Field    // Semantic field
	Label    string   // Name reported when the field is missing
	Aliases  []string // Accepted header spellings, tried in order (case-insensitive exact)
	Keyword  string   // Substring fallback when no alias matches; empty disables it
	Required bool     // Absence is a hard precondition failure
}

// HeaderIndex maps semantic fields to their column position.
// Fields that could not be resolved map to -1.
type HeaderIndex map[Field]int

// Col returns the column index for f, or -1 if f is absent.
func (h HeaderIndex) Col(f Field) int {
	if i, ok := h[f]; ok {
		return i
	}
	return -1
}

// Has reports whether f resolved to a column.
func (h HeaderIndex) Has(f Field) bool {
	return h.Col(f) >= 0
}

// CanonicalRow is the pivot representation every encoder consumes.
// Rows are built once by the canonicalizer and never mutated afterwards.
type CanonicalRow struct {
	Fecha       string // dd/mm/yyyy, always well formed
	Interno     string
	NumComp     string
	PuntoVenta  string
	RazonSocial string
	CUIT        string // digits only; may be empty
	Valor       decimal.Decimal
	Reten       decimal.Decimal
	Alicuota    decimal.Decimal // percent, member of the source catalog

	// Key orders rows in the sequencer. See SortKey.
	Key int
}

// FormatInfo contains display and layout information about an output format.
type FormatInfo struct {
	Key         string   `json:"key"`                // Unique identifier: "arciba"
	Group       string   `json:"group"`              // Receiving authority: "AGIP", "AFIP"
	Label       string   `json:"label"`              // Display name
	Description string   `json:"description"`        // One line summary
	Sources     []string `json:"sources"`            // Required source tables
	HeaderRow   int      `json:"headerRow"`          // 1-based sheet row holding the headers
	LineLength  int      `json:"lineLength"`         // Fixed record width; 0 for variable
	Separator   string   `json:"-"`                  // Line separator
	Trailing    bool     `json:"-"`                  // Separator also follows the last line
	Required    []string `json:"required,omitempty"` // Columns that must resolve
}

// Input is what a format transform receives: the source tables plus the
// header alias overrides that apply to this format.
type Input struct {
	Format    string
	Sources   Sources
	Overrides AliasOverrides
}

// Table returns the named source table.
func (in Input) Table(name string) Table {
	return in.Sources[name]
}

// Resolve resolves headers against specs after merging any alias overrides
// configured for this format.
func (in Input) Resolve(headers []string, specs []FieldSpec) HeaderIndex {
	return Resolve(headers, in.Overrides.Apply(in.Format, specs))
}

// TransformFunc turns the inputs of one conversion into output lines.
// Lines carry no separators; the service joins them per FormatInfo.
type TransformFunc func(in Input) ([]string, error)

// FormatDefinition contains everything needed to produce one filing format.
type FormatDefinition struct {
	Info      FormatInfo
	Transform TransformFunc
}

// Result is the outcome of a successful conversion.
type Result struct {
	ConversionID string   `json:"conversionId"`
	Format       string   `json:"format"`
	Text         string   `json:"result"`
	Lines        int      `json:"lines"`
	Warnings     []string `json:"warnings,omitempty"`
}

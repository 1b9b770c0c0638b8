package core

// validation.go defines the precondition failures of a conversion.
//
// Validation happens at two levels:
//  1. Shape: every source the format needs is present as a header list plus rows
//  2. Columns: formats with a declared required set must resolve all of it
//
// Individual cells are never validated; the normalizers coerce them to defaults.

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidShape means a source table is missing or is not a header list plus rows.
	ErrInvalidShape = errors.New("missing or invalid headers/rows")

	// ErrMissingSources means the dual-source flow did not receive both tables.
	ErrMissingSources = errors.New("se requieren ambos archivos: Retenciones y Percepciones (con datos válidos)")

	// ErrUnknownFormat means no format is registered under the requested key.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInternal hides unexpected failures from callers.
	ErrInternal = errors.New("internal conversion error")
)

// MissingColumnsError reports required columns that could not be resolved.
type MissingColumnsError struct {
	Format  string
	Source  string
	Columns []string
	Message string // Shown to the user
	Hint    string // Guidance on the expected headers
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns in %s/%s: %s",
		e.Format, e.Source, strings.Join(e.Columns, ", "))
}

// LineLengthError reports an output line whose length differs from the
// format's declared record width.
type LineLengthError struct {
	Format string
	Line   int
	Want   int
	Got    int
}

func (e *LineLengthError) Error() string {
	return fmt.Sprintf("line length mismatch: %s line %d has %d characters, want %d",
		e.Format, e.Line, e.Got, e.Want)
}

// RequireColumns resolves headers and fails with a MissingColumnsError when
// any required spec is absent.
func RequireColumns(in Input, source string, specs []FieldSpec, message, hint string) (HeaderIndex, error) {
	idx := in.Resolve(in.Table(source).Headers, specs)
	if missing := idx.Missing(specs); len(missing) > 0 {
		return nil, &MissingColumnsError{
			Format:  in.Format,
			Source:  source,
			Columns: missing,
			Message: message,
			Hint:    hint,
		}
	}
	return idx, nil
}

// ValidateSources checks that every source a format needs was supplied.
// Dual-source formats additionally need non-empty headers in each table.
func ValidateSources(info FormatInfo, sources Sources) error {
	for _, name := range info.Sources {
		t, ok := sources[name]
		if !ok || t.Headers == nil || t.Rows == nil {
			return shapeError(info)
		}
		if len(info.Sources) > 1 && len(t.Headers) == 0 {
			return shapeError(info)
		}
	}
	return nil
}

func shapeError(info FormatInfo) error {
	if len(info.Sources) > 1 {
		return ErrMissingSources
	}
	return ErrInvalidShape
}

// RequiredLabels lists the labels of required specs, for the format catalog.
func RequiredLabels(specs []FieldSpec) []string {
	var out []string
	for _, s := range specs {
		if s.Required {
			out = append(out, s.Label)
		}
	}
	return out
}

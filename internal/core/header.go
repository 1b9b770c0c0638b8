package core

import "strings"

// FindColumn returns the index of the header equal to name, ignoring case and
// surrounding whitespace, or -1.
func FindColumn(headers []string, name string) int {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, h := range headers {
		if strings.ToUpper(CleanCell(h)) == want {
			return i
		}
	}
	return -1
}

// FindColumnContaining returns the index of the first header containing part,
// ignoring case, or -1.
func FindColumnContaining(headers []string, part string) int {
	want := strings.ToUpper(strings.TrimSpace(part))
	if want == "" {
		return -1
	}
	for i, h := range headers {
		if strings.Contains(strings.ToUpper(h), want) {
			return i
		}
	}
	return -1
}

// Resolve maps every spec to a column of headers.
//
// Each alias is tried in order as a case-insensitive exact match; if none
// matches and the spec has a Keyword, the first header containing it wins.
// Unresolved fields map to -1, and readers treat that as an empty cell.
func Resolve(headers []string, specs []FieldSpec) HeaderIndex {
	idx := make(HeaderIndex, len(specs))
	for _, spec := range specs {
		idx[spec.Field] = resolveField(headers, spec)
	}
	return idx
}

func resolveField(headers []string, spec FieldSpec) int {
	for _, name := range spec.Aliases {
		if i := FindColumn(headers, name); i >= 0 {
			return i
		}
	}
	if spec.Keyword != "" {
		return FindColumnContaining(headers, spec.Keyword)
	}
	return -1
}

// Missing returns the labels of required specs that did not resolve,
// in spec order.
func (h HeaderIndex) Missing(specs []FieldSpec) []string {
	var missing []string
	for _, spec := range specs {
		if spec.Required && !h.Has(spec.Field) {
			label := spec.Label
			if label == "" {
				label = string(spec.Field)
			}
			missing = append(missing, label)
		}
	}
	return missing
}

// CanonicalSpec is a spec that only accepts the canonical field name itself.
func CanonicalSpec(f Field, required bool) FieldSpec {
	return FieldSpec{Field: f, Label: string(f), Aliases: []string{string(f)}, Required: required}
}

package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AliasOverrides holds extra header spellings per format and field.
// It is loaded once at startup and only read afterwards.
type AliasOverrides map[string]map[Field][]string

type aliasFile struct {
	Formats map[string]map[string][]string `yaml:"formats"`
}

// LoadAliasOverrides reads an alias override file. An empty path yields no overrides.
//
// File shape:
//
//	formats:
//	  iva:
//	    cuit: ["Nro. CUIT"]
//	    importe: ["Percepcion"]
func LoadAliasOverrides(path string) (AliasOverrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}
	return ParseAliasOverrides(data)
}

// ParseAliasOverrides decodes alias overrides from YAML.
func ParseAliasOverrides(data []byte) (AliasOverrides, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	out := make(AliasOverrides, len(f.Formats))
	for format, fields := range f.Formats {
		m := make(map[Field][]string, len(fields))
		for field, names := range fields {
			if len(names) == 0 {
				continue
			}
			m[Field(field)] = append([]string(nil), names...)
		}
		out[format] = m
	}
	return out, nil
}

// Apply returns specs with the overrides for format appended to each
// field's aliases. The input slice is not modified.
func (a AliasOverrides) Apply(format string, specs []FieldSpec) []FieldSpec {
	extra := a[format]
	if len(extra) == 0 {
		return specs
	}
	out := make([]FieldSpec, len(specs))
	for i, spec := range specs {
		if names := extra[spec.Field]; len(names) > 0 {
			aliases := make([]string, 0, len(spec.Aliases)+len(names))
			aliases = append(aliases, spec.Aliases...)
			spec.Aliases = append(aliases, names...)
		}
		out[i] = spec
	}
	return out
}

// Count returns the number of override spellings.
func (a AliasOverrides) Count() int {
	n := 0
	for _, fields := range a {
		for _, names := range fields {
			n += len(names)
		}
	}
	return n
}

package core

import (
	"fmt"
	"sort"
	"sync"
)

// catalog is the set of formats known to the process. Format packages fill
// it from init functions; after that it is only read.
type catalog struct {
	mu   sync.RWMutex
	defs map[string]FormatDefinition
}

var formats = &catalog{defs: make(map[string]FormatDefinition)}

// Register adds a format definition, filling in the defaults for sources,
// header row and separator. It panics on an empty or duplicate key and on
// a missing transform.
func Register(def FormatDefinition) {
	key := def.Info.Key
	switch {
	case key == "":
		panic("format registered without a key")
	case def.Transform == nil:
		panic(fmt.Sprintf("format %s has no transform", key))
	}

	if len(def.Info.Sources) == 0 {
		def.Info.Sources = []string{SourceMain}
	}
	if def.Info.HeaderRow == 0 {
		def.Info.HeaderRow = 1
	}
	if def.Info.Separator == "" {
		def.Info.Separator = "\n"
	}

	formats.mu.Lock()
	defer formats.mu.Unlock()

	if _, exists := formats.defs[key]; exists {
		panic(fmt.Sprintf("format already registered: %s", key))
	}
	formats.defs[key] = def
}

// Get returns the definition registered under key.
func Get(key string) (FormatDefinition, bool) {
	formats.mu.RLock()
	defer formats.mu.RUnlock()

	def, ok := formats.defs[key]
	return def, ok
}

// All returns every definition ordered by group, then key.
func All() []FormatDefinition {
	return formats.filter(func(FormatDefinition) bool { return true })
}

// ByGroup returns the definitions of one receiving authority, ordered by key.
func ByGroup(group string) []FormatDefinition {
	return formats.filter(func(def FormatDefinition) bool { return def.Info.Group == group })
}

// Keys returns every registered key in the order of All.
func Keys() []string {
	defs := All()
	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Info.Key
	}
	return keys
}

// Groups returns the distinct group names, sorted.
func Groups() []string {
	formats.mu.RLock()
	defer formats.mu.RUnlock()

	seen := make(map[string]bool)
	var groups []string
	for _, def := range formats.defs {
		if !seen[def.Info.Group] {
			seen[def.Info.Group] = true
			groups = append(groups, def.Info.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// FormatCount returns the number of registered formats.
func FormatCount() int {
	formats.mu.RLock()
	defer formats.mu.RUnlock()
	return len(formats.defs)
}

func (c *catalog) filter(keep func(FormatDefinition) bool) []FormatDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []FormatDefinition
	for _, def := range c.defs {
		if keep(def) {
			out = append(out, def)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Info.Group != out[j].Info.Group {
			return out[i].Info.Group < out[j].Info.Group
		}
		return out[i].Info.Key < out[j].Info.Key
	})
	return out
}

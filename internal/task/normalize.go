// Package task validates and normalizes raw task field values against the
// schema registry.
package task

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/kayz/questgen/internal/schema"
	"github.com/kayz/questgen/internal/yamltext"
)

// Fields is a normalized field map. Values are int, bool, string or []string.
type Fields map[string]any

// Clone returns a deep copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			v = cp
		}
		out[k] = v
	}
	return out
}

// Raw returns the fields as a plain map, suitable as Normalize input.
func (f Fields) Raw() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f.Clone() {
		out[k] = v
	}
	return out
}

// Ordered returns the fields in the kind's declaration order. Keys the kind
// does not declare are appended in lexical order.
func (f Fields) Ordered(kind *schema.Kind) *yamltext.Map {
	out := yamltext.NewMap()
	seen := make(map[string]bool, len(f))
	for _, field := range kind.Fields() {
		if v, ok := f[field.Name]; ok {
			out.Set(field.Name, v)
			seen[field.Name] = true
		}
	}
	var extra []string
	for k := range f {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out.Set(k, f[k])
	}
	return out
}

// Normalize coerces raw values to their declared types, applies defaults,
// drops empty optional values and enforces mutex pairs. It either returns a
// complete field map or an error, never a partial result.
func Normalize(kind string, raw map[string]any) (Fields, error) {
	k, err := schema.Lookup(kind)
	if err != nil {
		return nil, err
	}

	for name := range raw {
		if _, ok := k.Field(name); !ok {
			return nil, fmt.Errorf("task kind %s: field %q: %w", kind, name, ErrUnknownField)
		}
	}

	out := make(Fields, len(raw))
	for _, field := range k.Required {
		v, err := coerce(kind, field, raw[field.Name])
		if err != nil {
			return nil, err
		}
		out[field.Name] = v
	}

	for _, field := range k.Optional {
		value, present := raw[field.Name]
		if !present || value == nil {
			value = field.Default
		}
		v, err := coerce(kind, field, value)
		if err != nil {
			return nil, err
		}
		if retained(field.Type, v) {
			out[field.Name] = v
		}
	}

	for _, pair := range k.Mutex {
		if populated(out, pair.A) && populated(out, pair.B) {
			return nil, &MutexError{Kind: kind, FieldA: pair.A, FieldB: pair.B}
		}
	}

	return out, nil
}

// retained applies the per-type retention policy for optional fields.
// Booleans are always kept; the other types are kept only when non-empty.
func retained(t schema.FieldType, v any) bool {
	switch t {
	case schema.Boolean:
		return true
	case schema.String:
		s, _ := v.(string)
		return s != ""
	case schema.StringList:
		l, _ := v.([]string)
		return len(l) > 0
	case schema.OptionalInteger, schema.TriState:
		return v != nil
	default:
		return v != nil
	}
}

func populated(f Fields, name string) bool {
	switch v := f[name].(type) {
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	}
	return false
}

// Defaults returns seed values for a new task of kind: required integers
// are drawn from [1, 64], optional fields take their declared defaults.
// The result is a raw map meant for editing, not a normalized record.
func Defaults(kind string, rng *rand.Rand) (map[string]any, error) {
	k, err := schema.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := make(map[string]any, len(k.Required)+len(k.Optional))
	for _, field := range k.Required {
		if field.Type == schema.Integer {
			out[field.Name] = rng.IntN(64) + 1
		} else {
			out[field.Name] = ""
		}
	}
	for _, field := range k.Optional {
		switch field.Type {
		case schema.StringList:
			out[field.Name] = []string{}
		case schema.OptionalInteger, schema.TriState:
			out[field.Name] = nil
		default:
			out[field.Name] = field.Default
		}
	}
	return out, nil
}

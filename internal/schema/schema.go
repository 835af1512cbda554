// Package schema holds the static catalog of quest task kinds.
//
// Every kind declares its required fields, its optional fields with their
// defaults, and the pairs of fields that may not both be populated. The
// catalog is built once at package initialization and never mutated.
package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownTaskKind is returned when a kind is not registered.
var ErrUnknownTaskKind = errors.New("unknown task kind")

// FieldType tags the value type of a task field.
type FieldType int

const (
	Integer FieldType = iota + 1
	// OptionalInteger is an integer that may be absent. Absent values are
	// never written and never seeded with a random value.
	OptionalInteger
	Boolean
	String
	StringList
	// TriState is unset, true or false. Unset is distinct from false.
	TriState
)

func (t FieldType) String() string {
	switch t {
	case Integer:
		return "integer"
	case OptionalInteger:
		return "optionalInteger"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case StringList:
		return "stringList"
	case TriState:
		return "triState"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field declares one task field. Default is typed by Type: int for Integer,
// nil for OptionalInteger and TriState, bool, string, or []string.
type Field struct {
	Name     string
	Type     FieldType
	Default  any
	Required bool
}

// MutexPair names two fields of which at most one may be populated.
type MutexPair struct {
	A string
	B string
}

// Kind is the field contract of one task type.
type Kind struct {
	Name     string
	Title    string
	Required []Field
	Optional []Field
	Mutex    []MutexPair
}

// Fields returns the required fields followed by the optional ones, in
// declaration order. This is the order fields are serialized in.
func (k *Kind) Fields() []Field {
	out := make([]Field, 0, len(k.Required)+len(k.Optional))
	out = append(out, k.Required...)
	out = append(out, k.Optional...)
	return out
}

// Field looks up a declared field by name.
func (k *Kind) Field(name string) (Field, bool) {
	for _, f := range k.Required {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range k.Optional {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Lookup returns a copy of the schema registered for kind. Changes to the
// copy never reach the catalog.
func Lookup(kind string) (*Kind, error) {
	k, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskKind, kind)
	}
	return k.clone(), nil
}

func (k *Kind) clone() *Kind {
	c := *k
	c.Required = cloneFields(k.Required)
	c.Optional = cloneFields(k.Optional)
	c.Mutex = append([]MutexPair(nil), k.Mutex...)
	return &c
}

func cloneFields(in []Field) []Field {
	if in == nil {
		return nil
	}
	out := make([]Field, len(in))
	copy(out, in)
	for i, f := range out {
		if list, ok := f.Default.([]string); ok {
			out[i].Default = append([]string{}, list...)
		}
	}
	return out
}

// Kinds returns the registered kind names in registration order.
func Kinds() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Title returns the player-facing category title for kind, or the kind
// itself when no title is mapped.
func Title(kind string) string {
	if k, ok := registry[kind]; ok && k.Title != "" {
		return k.Title
	}
	return kind
}

var (
	registry = make(map[string]*Kind)
	order    []string
)

func register(k *Kind) {
	if _, exists := registry[k.Name]; exists {
		panic("schema: duplicate kind " + k.Name)
	}
	for i := range k.Required {
		k.Required[i].Required = true
	}
	for _, p := range k.Mutex {
		_, okA := k.Field(p.A)
		_, okB := k.Field(p.B)
		if !okA || !okB {
			panic(fmt.Sprintf("schema: kind %s mutex pair %s/%s names an undeclared field", k.Name, p.A, p.B))
		}
	}
	registry[k.Name] = k
	order = append(order, k.Name)
}

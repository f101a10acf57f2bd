package envariability

import (
	"encoding/json"
	"fmt"
)

// Type is the declared value type of a configuration element. It selects how
// the raw environment string is converted into the resolved value.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeOther   Type = "other"
)

// Types lists every recognized type tag.
var Types = []Type{TypeBoolean, TypeInteger, TypeArray, TypeString, TypeOther}

// Valid reports whether t is one of the recognized type tags.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Transformer converts a raw environment value for elements of type other.
// The full Options are passed so a transform can read caller-supplied
// custom values.
type Transformer interface {
	Transform(raw string, opts *Options) (any, error)
}

// TransformFunc adapts an ordinary function to the Transformer interface.
type TransformFunc func(raw string, opts *Options) (any, error)

// Transform calls f(raw, opts).
func (f TransformFunc) Transform(raw string, opts *Options) (any, error) {
	return f(raw, opts)
}

type namedTransform struct {
	name string
	fn   TransformFunc
}

func (n namedTransform) Transform(raw string, opts *Options) (any, error) {
	return n.fn(raw, opts)
}

func (n namedTransform) String() string {
	return n.name
}

// NamedTransform returns a Transformer that renders as name in the
// documentation table.
func NamedTransform(name string, fn TransformFunc) Transformer {
	return namedTransform{name: name, fn: fn}
}

// Element is a leaf of the configuration schema: a single configurable value.
type Element struct {
	Doc       string
	Type      Type
	Required  bool
	Default   any
	Transform Transformer
}

// MarshalJSON serializes the element in its descriptor form. The transform
// is represented by its name.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptor{
		Doc:       e.Doc,
		Type:      e.Type,
		Default:   e.Default,
		Required:  e.Required,
		Transform: transformName(e.Transform),
	})
}

// property returns the descriptor property called name, as seen by the
// documentation table.
func (e *Element) property(name string) (any, bool) {
	switch name {
	case "doc":
		return e.Doc, true
	case "type":
		return string(e.Type), true
	case "default":
		return e.Default, true
	case "required":
		return e.Required, true
	case "transform":
		return transformName(e.Transform), true
	}
	return nil, false
}

func transformName(t Transformer) string {
	if t == nil {
		return ""
	}
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return "custom"
}

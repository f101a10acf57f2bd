package envariability

import (
	"math"
)

// Kind is the classification of a schema node.
type Kind int

const (
	// KindGroup is a namespace of named child nodes.
	KindGroup Kind = iota
	// KindLeaf is a configuration element.
	KindLeaf
	// KindMalformed is a value that is neither.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindLeaf:
		return "leaf"
	default:
		return "malformed"
	}
}

// Validator decides whether a schema node has the shape of a configuration
// element, and returns the element when it does.
type Validator interface {
	Element(node any) (*Element, bool)
}

// ShapeValidator is the default Validator. Element values are always
// elements. A map[string]any or Group is an element when its keys are drawn
// from the descriptor properties, doc is a string, type is a known tag,
// required is a bool and a transform is present for type other.
type ShapeValidator struct {
	// Transforms resolves transforms given by name, as schema files do.
	Transforms func(name string) (Transformer, bool)
}

// Element implements Validator.
func (v ShapeValidator) Element(node any) (*Element, bool) {
	switch n := node.(type) {
	case Element:
		return &n, true
	case *Element:
		return n, n != nil
	case map[string]any:
		return v.fromMap(n)
	case Group:
		return v.fromMap(n.Children)
	case *Group:
		if n != nil {
			return v.fromMap(n.Children)
		}
	}
	return nil, false
}

func (v ShapeValidator) fromMap(m map[string]any) (*Element, bool) {
	for key := range m {
		switch key {
		case "doc", "type", "required", "default", "transform":
		default:
			return nil, false
		}
	}
	doc, ok := m["doc"].(string)
	if !ok {
		return nil, false
	}
	tag, ok := m["type"].(string)
	if !ok || !Type(tag).Valid() {
		return nil, false
	}
	required, ok := m["required"].(bool)
	if !ok {
		return nil, false
	}
	el := &Element{
		Doc:      doc,
		Type:     Type(tag),
		Required: required,
		Default:  normalizeDefault(Type(tag), m["default"]),
	}
	if raw, present := m["transform"]; present {
		t, ok := v.transform(raw)
		if !ok {
			return nil, false
		}
		el.Transform = t
	}
	if el.Type == TypeOther && el.Transform == nil {
		return nil, false
	}
	return el, true
}

func (v ShapeValidator) transform(raw any) (Transformer, bool) {
	switch t := raw.(type) {
	case Transformer:
		return t, true
	case func(string, *Options) (any, error):
		return TransformFunc(t), true
	case string:
		if v.Transforms == nil {
			return nil, false
		}
		return v.Transforms(t)
	}
	return nil, false
}

// normalizeDefault converts decoder representations of defaults to the
// types the environment transforms produce: int for integer, []string for
// array.
func normalizeDefault(t Type, value any) any {
	switch t {
	case TypeInteger:
		switch n := value.(type) {
		case int64:
			return int(n)
		case float64:
			if n == math.Trunc(n) {
				return int(n)
			}
		}
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return value
			}
			out = append(out, s)
		}
		return out
	}
	return value
}

// classify decides what node is before any recursion happens. The group is
// returned for groups only.
func classify(v Validator, node any) (Kind, *Element, *Group) {
	if el, ok := v.Element(node); ok {
		return KindLeaf, el, nil
	}
	if g, ok := asGroup(node); ok {
		return KindGroup, nil, g
	}
	return KindMalformed, nil, nil
}

// Classify reports the kind of node under the default ShapeValidator.
func Classify(node any) Kind {
	kind, _, _ := classify(ShapeValidator{}, node)
	return kind
}

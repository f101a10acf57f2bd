package envariability

import (
	"reflect"
	"slices"
)

// Group is a schema group that keeps the order its keys were declared in.
// Schema files decode into groups so documentation rows follow the file.
// Plain maps are groups too; their keys are visited in sorted order.
type Group struct {
	Keys     []string
	Children map[string]any
}

// Set stores node under key. A new key is appended to Keys.
func (g *Group) Set(key string, node any) {
	if g.Children == nil {
		g.Children = make(map[string]any)
	}
	if _, ok := g.Children[key]; !ok {
		g.Keys = append(g.Keys, key)
	}
	g.Children[key] = node
}

// ordered returns the keys of g in declaration order, followed in sorted
// order by children Keys doesn't mention. Keys without a child are skipped.
func (g *Group) ordered() []string {
	keys := make([]string, 0, len(g.Children))
	listed := make(map[string]bool, len(g.Keys))
	for _, key := range g.Keys {
		if _, ok := g.Children[key]; ok && !listed[key] {
			keys = append(keys, key)
			listed[key] = true
		}
	}
	var rest []string
	for key := range g.Children {
		if !listed[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// asGroup returns node as a group with its visiting order settled.
func asGroup(node any) (*Group, bool) {
	switch n := node.(type) {
	case *Group:
		if n == nil {
			return nil, false
		}
		return &Group{Keys: n.ordered(), Children: n.Children}, true
	case Group:
		return &Group{Keys: n.ordered(), Children: n.Children}, true
	case map[string]any:
		return &Group{Keys: sortedKeys(n), Children: n}, true
	}

	rv := reflect.ValueOf(node)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	children := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		children[iter.Key().String()] = iter.Value().Interface()
	}
	return &Group{Keys: sortedKeys(children), Children: children}, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

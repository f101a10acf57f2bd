package envariability

import (
	"encoding/json"
	"slices"
)

// Config is a resolved configuration tree. Groups of the schema are nested
// *Config values and elements are their resolved values. A Config built
// with Options.Immutable rejects every modification.
type Config struct {
	values    map[string]any
	immutable bool
}

// Immutable reports whether c rejects modification.
func (c *Config) Immutable() bool {
	return c.immutable
}

// Len returns the number of keys in c.
func (c *Config) Len() int {
	return len(c.values)
}

// Keys returns the keys of c in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value stored under key. Slices of a sealed tree are
// returned as copies.
func (c *Config) Get(key string) (any, bool) {
	v, ok := c.values[key]
	if !ok {
		return nil, false
	}
	if c.immutable {
		if s, isSlice := v.([]string); isSlice {
			return slices.Clone(s), true
		}
	}
	return v, true
}

// Sub returns the group stored under key.
func (c *Config) Sub(key string) (*Config, bool) {
	v, ok := c.values[key]
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Config)
	return sub, ok
}

// Lookup follows path through nested groups and returns the value at its end.
func (c *Config) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return c, true
	}
	cur := c
	for _, key := range path[:len(path)-1] {
		sub, ok := cur.Sub(key)
		if !ok {
			return nil, false
		}
		cur = sub
	}
	return cur.Get(path[len(path)-1])
}

// Set stores value under key. It fails with ErrImmutable on a sealed tree.
func (c *Config) Set(key string, value any) error {
	if c.immutable {
		return ErrImmutable
	}
	c.values[key] = value
	return nil
}

// Map returns a deep copy of c as nested plain maps.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for key, v := range c.values {
		switch val := v.(type) {
		case *Config:
			out[key] = val.Map()
		case []string:
			out[key] = slices.Clone(val)
		default:
			out[key] = v
		}
	}
	return out
}

// MarshalJSON encodes c as a JSON object.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

package schemafile

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/salesforce/envariability"
)

// ListSeparatorKey is the custom option the list transform splits on.
const ListSeparatorKey = "listSeparator"

// Registry maps transform names used in schema files to transforms.
type Registry struct {
	transforms map[string]envariability.Transformer
}

// NewRegistry returns a registry holding the builtin transforms:
//
//   - trim: strip surrounding white space
//   - upper, lower: change case
//   - list: split on the listSeparator custom option (default ","), trim
//     every item and drop empty ones
//   - url: parse an absolute URL
//   - duration: parse a time.Duration
func NewRegistry() *Registry {
	r := &Registry{transforms: make(map[string]envariability.Transformer)}
	r.Register("trim", func(raw string, _ *envariability.Options) (any, error) {
		return strings.TrimSpace(raw), nil
	})
	r.Register("upper", func(raw string, _ *envariability.Options) (any, error) {
		return strings.ToUpper(raw), nil
	})
	r.Register("lower", func(raw string, _ *envariability.Options) (any, error) {
		return strings.ToLower(raw), nil
	})
	r.Register("list", splitList)
	r.Register("url", parseURL)
	r.Register("duration", func(raw string, _ *envariability.Options) (any, error) {
		return time.ParseDuration(strings.TrimSpace(raw))
	})
	return r
}

// Register adds fn under name, replacing any transform of the same name.
func (r *Registry) Register(name string, fn envariability.TransformFunc) {
	r.transforms[name] = envariability.NamedTransform(name, fn)
}

// Lookup returns the transform registered under name.
func (r *Registry) Lookup(name string) (envariability.Transformer, bool) {
	t, ok := r.transforms[name]
	return t, ok
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func splitList(raw string, opts *envariability.Options) (any, error) {
	sep := ","
	if v, ok := opts.Value(ListSeparatorKey); ok {
		s, isString := v.(string)
		if !isString || s == "" {
			return nil, fmt.Errorf("custom option %s must be a non-empty string, got %v", ListSeparatorKey, v)
		}
		sep = s
	}
	var items []string
	for _, item := range strings.Split(raw, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func parseURL(raw string, _ *envariability.Options) (any, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("url %q is not absolute", raw)
	}
	return u.String(), nil
}

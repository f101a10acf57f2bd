package envariability

import (
	"log/slog"
	"maps"
	"os"
	"strings"
)

// Option customizes a single Resolve or Document call.
type Option func(*Options)

// Options controls how environment variable names are derived, how values
// are split and whether the resolved tree can be modified.
type Options struct {
	// Prefix starts every environment variable name.
	Prefix string
	// WordSeparator joins the prefix and each transformed key.
	WordSeparator string
	// ArraySeparator splits values of type array.
	ArraySeparator string
	// NameTransform maps a schema key to its environment variable segment.
	NameTransform func(string) string
	// Immutable seals every level of the resolved tree.
	Immutable bool
	// Environment is the snapshot values are looked up in.
	Environment map[string]string
	// Custom holds caller values for transforms of type other.
	Custom map[string]any
	// Columns overrides the documentation columns.
	Columns []Column
	// Validator recognizes configuration elements.
	Validator Validator
	Logger    *slog.Logger
}

// DefaultOptions returns the options used when a call supplies none. The
// environment is left unset; entry points snapshot the process environment
// when no Option provides one.
func DefaultOptions() *Options {
	return &Options{
		WordSeparator:  "_",
		ArraySeparator: "%",
		NameTransform:  strings.ToUpper,
		Immutable:      true,
		Validator:      ShapeValidator{},
	}
}

func newOptions(opts []Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Environment == nil {
		o.Environment = Environ()
	}
	if o.NameTransform == nil {
		o.NameTransform = strings.ToUpper
	}
	if o.Validator == nil {
		o.Validator = ShapeValidator{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// WithPrefix sets the prefix of every environment variable name.
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithWordSeparator sets the string placed before each key segment.
func WithWordSeparator(sep string) Option {
	return func(o *Options) {
		o.WordSeparator = sep
	}
}

// WithArraySeparator sets the delimiter used to split array values.
func WithArraySeparator(sep string) Option {
	return func(o *Options) {
		o.ArraySeparator = sep
	}
}

// WithNameTransform sets the function mapping a schema key to its
// environment variable segment.
func WithNameTransform(fn func(string) string) Option {
	return func(o *Options) {
		o.NameTransform = fn
	}
}

// WithImmutable controls whether the resolved tree rejects modification.
func WithImmutable(immutable bool) Option {
	return func(o *Options) {
		o.Immutable = immutable
	}
}

// WithEnvironment sets the environment snapshot. The map is copied.
func WithEnvironment(env map[string]string) Option {
	snapshot := maps.Clone(env)
	if snapshot == nil {
		snapshot = map[string]string{}
	}
	return func(o *Options) {
		o.Environment = snapshot
	}
}

// WithCustom stores a caller value transforms can read with Options.Value.
func WithCustom(key string, value any) Option {
	return func(o *Options) {
		if o.Custom == nil {
			o.Custom = make(map[string]any)
		}
		o.Custom[key] = value
	}
}

// WithColumns sets the documentation columns, in order.
func WithColumns(columns ...Column) Option {
	return func(o *Options) {
		o.Columns = columns
	}
}

// WithValidator replaces the element recognizer.
func WithValidator(v Validator) Option {
	return func(o *Options) {
		o.Validator = v
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Value returns the custom value stored under key.
func (o *Options) Value(key string) (any, bool) {
	v, ok := o.Custom[key]
	return v, ok
}

// EnvPath returns the environment variable name of key below current.
func (o *Options) EnvPath(current, key string) string {
	return current + o.WordSeparator + o.NameTransform(key)
}

// Environ snapshots the process environment.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[name] = value
	}
	return env
}

package envariability

// Resolve builds the configuration described by schema from the environment
// snapshot in the options. schema is a nested map of groups whose leaves are
// configuration elements.
func Resolve(schema any, opts ...Option) (*Config, error) {
	o := newOptions(opts)
	v, err := fold(schema, o, o.Prefix, rootParent, folder[any]{
		leaf: resolveLeaf,
		empty: func() any {
			return make(map[string]any)
		},
		reduce: func(acc any, key string, part any) any {
			acc.(map[string]any)[key] = part
			return acc
		},
		seal: func(acc any, opts *Options) any {
			return &Config{values: acc.(map[string]any), immutable: opts.Immutable}
		},
	})
	if err != nil {
		return nil, err
	}
	cfg, ok := v.(*Config)
	if !ok {
		// The root itself was an element.
		return nil, &SchemaMismatchError{Node: schema, Parent: rootParent}
	}
	return cfg, nil
}

// resolveLeaf prefers the environment value of el, falls back to its
// default and fails when a required element has neither. An empty value in
// the environment counts as unset. An unknown type fails whether or not the
// variable is set.
func resolveLeaf(el *Element, parent, envPath string, opts *Options) (any, error) {
	if !el.Type.Valid() {
		return nil, &UnknownTypeError{Type: el.Type, Env: envPath}
	}
	raw := opts.Environment[envPath]
	if raw == "" {
		if el.Required && el.Default == nil {
			return nil, &MissingValueError{Element: el, Parent: parent, Env: envPath}
		}
		opts.Logger.Debug("configuration element uses default", "env", envPath)
		return el.Default, nil
	}

	transform, err := transformFor(el.Type, el.Transform, opts)
	if err != nil {
		return nil, err
	}
	v, err := transform(raw)
	if err != nil {
		return nil, &InvalidValueError{Env: envPath, Type: el.Type, Value: raw, Err: err}
	}
	opts.Logger.Debug("configuration element read from environment", "env", envPath)
	return v, nil
}

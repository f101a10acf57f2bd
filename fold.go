package envariability

// rootParent names the parent of top-level schema nodes in error messages.
const rootParent = "Configuration root"

// folder is the set of callbacks fold is parameterized with.
type folder[R any] struct {
	// leaf maps a configuration element to its result.
	leaf func(el *Element, parent, envPath string, opts *Options) (R, error)
	// empty seeds the aggregate of a group.
	empty func() R
	// reduce folds the result of the child called key into acc.
	reduce func(acc R, key string, part R) R
	// seal finishes a group's aggregate.
	seal func(acc R, opts *Options) R
}

// fold walks node depth first. Elements are handed to f.leaf, groups fold
// their children in visiting order through f.reduce, and anything else is a
// SchemaMismatchError.
func fold[R any](node any, opts *Options, envPath, parent string, f folder[R]) (R, error) {
	var zero R

	kind, el, group := classify(opts.Validator, node)
	switch kind {
	case KindMalformed:
		return zero, &SchemaMismatchError{Node: node, Parent: parent}
	case KindLeaf:
		return f.leaf(el, parent, envPath, opts)
	}

	acc := f.empty()
	for _, key := range group.Keys {
		part, err := fold(group.Children[key], opts, opts.EnvPath(envPath, key), key, f)
		if err != nil {
			return zero, err
		}
		acc = f.reduce(acc, key, part)
	}
	return f.seal(acc, opts), nil
}

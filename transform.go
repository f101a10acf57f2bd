package envariability

import (
	"strconv"
	"strings"
)

type valueTransform func(raw string) (any, error)

func identity(raw string) (any, error) {
	return raw, nil
}

// transformFor returns the conversion for values of type t. custom is only
// consulted for TypeOther; a nil custom transform leaves the value as is.
func transformFor(t Type, custom Transformer, opts *Options) (valueTransform, error) {
	switch t {
	case TypeBoolean:
		return func(raw string) (any, error) {
			return strings.EqualFold(raw, "TRUE"), nil
		}, nil
	case TypeInteger:
		return func(raw string) (any, error) {
			return strconv.Atoi(raw)
		}, nil
	case TypeArray:
		return func(raw string) (any, error) {
			return strings.Split(raw, opts.ArraySeparator), nil
		}, nil
	case TypeString:
		return identity, nil
	case TypeOther:
		if custom == nil {
			return identity, nil
		}
		return func(raw string) (any, error) {
			return custom.Transform(raw, opts)
		}, nil
	}
	return nil, &UnknownTypeError{Type: t}
}

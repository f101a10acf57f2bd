package envariability

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrImmutable is returned when modifying a sealed configuration tree.
var ErrImmutable = errors.New("configuration is immutable")

// SchemaMismatchError reports a schema node that is neither a configuration
// element nor a group of nodes.
type SchemaMismatchError struct {
	Node   any
	Parent string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("Element %v from %s doesn't match the config schema %s",
		e.Node, e.Parent, descriptorSchemaJSON())
}

// MissingValueError reports a required element that has neither a default
// nor a value in the environment.
type MissingValueError struct {
	Element *Element
	Parent  string
	Env     string
}

func (e *MissingValueError) Error() string {
	data, err := json.Marshal(e.Element)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", *e.Element))
	}
	return fmt.Sprintf("Required configuration %s from [%s] doesn't have a default value "+
		"and no corresponding environment variable at %s", data, e.Parent, e.Env)
}

// UnknownTypeError reports an element declaring a type outside Types.
type UnknownTypeError struct {
	Type Type
	Env  string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown configuration element type %q at %s", e.Type, e.Env)
}

// DuplicateColumnError reports a documentation column whose property is
// already shown by an earlier column.
type DuplicateColumnError struct {
	Property string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q given more than once", e.Property)
}

// InvalidValueError reports an environment value its element's type could
// not convert.
type InvalidValueError struct {
	Env   string
	Type  Type
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q at %s: %v", e.Type, e.Value, e.Env, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

package envariability

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// descriptor is the serialized shape of an Element. Its reflected JSON
// schema is the contract every leaf of a configuration schema satisfies, and
// its property order drives the default documentation columns.
type descriptor struct {
	Doc       string `json:"doc" jsonschema:"description=Human readable description of the value"`
	Type      Type   `json:"type" jsonschema:"enum=boolean,enum=integer,enum=array,enum=string,enum=other"`
	Default   any    `json:"default,omitempty" jsonschema:"description=Value used when the environment has none"`
	Required  bool   `json:"required"`
	Transform string `json:"transform,omitempty" jsonschema:"description=Transform applied to values of type other"`
}

var descriptorSchema = reflectDescriptor()

func reflectDescriptor() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&descriptor{})
	s.Title = "Configuration element"
	s.Description = "Leaf of an environment configuration schema"
	return s
}

// DescriptorSchema returns the JSON schema of a configuration element.
func DescriptorSchema() *jsonschema.Schema {
	return descriptorSchema
}

// descriptorProperties lists the element properties in declaration order.
func descriptorProperties() []string {
	var names []string
	for pair := descriptorSchema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func descriptorSchemaJSON() string {
	data, err := json.Marshal(descriptorSchema)
	if err != nil {
		return "{}"
	}
	return string(data)
}

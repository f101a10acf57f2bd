// Package schemafile loads configuration schemas and environment snapshots
// from files.
//
// Schemas are nested tables whose leaves carry the descriptor properties:
//
//	[app.port]
//	doc = "listen port"
//	type = "integer"
//	required = true
//	default = 8080
//
// Elements of type other name their transform, which is looked up in a
// Registry. Groups keep the order the file declares their keys in.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/salesforce/envariability"
)

// Format is the encoding of a schema file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf derives the format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported schema file extension %q", filepath.Ext(path))
}

// Schema is a decoded schema tree together with the registry its transform
// names resolve against.
type Schema struct {
	Tree     *envariability.Group
	Registry *Registry
}

// Validator recognizes the descriptor tables of the schema.
func (s *Schema) Validator() envariability.Validator {
	return envariability.ShapeValidator{Transforms: s.Registry.Lookup}
}

// Options returns the options Resolve and Document need for this schema.
func (s *Schema) Options() []envariability.Option {
	return []envariability.Option{envariability.WithValidator(s.Validator())}
}

// Load reads and decodes the schema file at path. A nil registry means
// NewRegistry().
func Load(path string, reg *Registry) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	s, err := Parse(data, format, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format, reg *Registry) (*Schema, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	var (
		tree *envariability.Group
		err  error
	)
	switch format {
	case FormatTOML:
		tree, err = decodeTOML(data)
	case FormatYAML:
		tree, err = decodeYAML(data)
	case FormatJSON:
		tree, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", strings.ToUpper(string(format)), err)
	}
	return &Schema{Tree: tree, Registry: reg}, nil
}

// LoadEnvFile reads a dotenv file into an environment snapshot.
func LoadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return env, nil
}

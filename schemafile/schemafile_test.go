package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesforce/envariability"
)

const tomlSchema = `
[app.enabled]
doc = "boolean value"
type = "boolean"
required = true
default = false

[app.port]
doc = "integer value"
type = "integer"
required = true
default = 8080

[app.hosts]
doc = "upstream hosts"
type = "other"
transform = "list"
required = false

[app.nested.nested]
doc = "string value"
type = "string"
required = true
default = "nested"
`

const yamlSchema = `
app:
  enabled:
    doc: boolean value
    type: boolean
    required: true
    default: false
  port:
    doc: integer value
    type: integer
    required: true
    default: 8080
  hosts:
    doc: upstream hosts
    type: other
    transform: list
    required: false
  nested:
    nested:
      doc: string value
      type: string
      required: true
      default: nested
`

const jsonSchema = `{
  "app": {
    "enabled": {"doc": "boolean value", "type": "boolean", "required": true, "default": false},
    "port": {"doc": "integer value", "type": "integer", "required": true, "default": 8080},
    "hosts": {"doc": "upstream hosts", "type": "other", "transform": "list", "required": false},
    "nested": {"nested": {"doc": "string value", "type": "string", "required": true, "default": "nested"}}
  }
}`

func TestParse_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, tomlSchema},
		{"yaml", FormatYAML, yamlSchema},
		{"json", FormatJSON, jsonSchema},
	}

	expected := map[string]any{
		"app": map[string]any{
			"enabled": false,
			"port":    8080,
			"hosts":   []string{"a", "b"},
			"nested":  map[string]any{"nested": "nested"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format, nil)
			require.NoError(t, err)

			opts := append(s.Options(), envariability.WithEnvironment(map[string]string{
				"_APP_HOSTS": " a, b ,,",
			}))
			cfg, err := envariability.Resolve(s.Tree, opts...)
			require.NoError(t, err)
			assert.Equal(t, expected, cfg.Map())
		})
	}
}

func TestParse_Document(t *testing.T) {
	s, err := Parse([]byte(tomlSchema), FormatTOML, nil)
	require.NoError(t, err)

	opts := append(s.Options(),
		envariability.WithPrefix("SVC"),
		envariability.WithEnvironment(nil),
		envariability.WithColumns(
			envariability.Column{Property: "env", Name: "Variable"},
			envariability.Column{Property: "transform", Name: "Transform"},
		))
	table, err := envariability.Document(s.Tree, opts...)
	require.NoError(t, err)
	assert.Equal(t, `
| Variable | Transform |
| --- | --- |
| SVC_APP_ENABLED | --- |
| SVC_APP_PORT | --- |
| SVC_APP_HOSTS | list |
| SVC_APP_NESTED_NESTED | --- |`, table)
}

func TestParse_DeclarationOrder(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, `
[svc.zone]
doc = "zone"
type = "string"
required = false

[svc.api.timeout]
doc = "timeout"
type = "integer"
required = false

[svc.addr]
doc = "addr"
type = "string"
required = false
`},
		{"yaml", FormatYAML, `
svc:
  zone: {doc: zone, type: string, required: false}
  api:
    timeout: {doc: timeout, type: integer, required: false}
  addr: {doc: addr, type: string, required: false}
`},
		{"json", FormatJSON, `{"svc": {
  "zone": {"doc": "zone", "type": "string", "required": false},
  "api": {"timeout": {"doc": "timeout", "type": "integer", "required": false}},
  "addr": {"doc": "addr", "type": "string", "required": false}
}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format, nil)
			require.NoError(t, err)

			opts := append(s.Options(),
				envariability.WithEnvironment(nil),
				envariability.WithColumns(envariability.Column{Property: "env", Name: "env"}))
			table, err := envariability.Document(s.Tree, opts...)
			require.NoError(t, err)
			assert.Equal(t, "\n| env |\n| --- |\n| _SVC_ZONE |\n| _SVC_API_TIMEOUT |\n| _SVC_ADDR |", table)
		})
	}
}

func TestParse_YAMLMerge(t *testing.T) {
	data := `
base: &base
  doc: shared
  type: string
  required: false
app:
  name:
    <<: *base
    default: svc
`
	s, err := Parse([]byte(data), FormatYAML, nil)
	require.NoError(t, err)

	cfg, err := envariability.Resolve(s.Tree, append(s.Options(), envariability.WithEnvironment(nil))...)
	require.NoError(t, err)
	v, ok := cfg.Lookup("app", "name")
	require.True(t, ok)
	assert.Equal(t, "svc", v)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("not valid toml ==="), FormatTOML, nil)
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), Format("ini"), nil)
	assert.Error(t, err)

	_, err = Parse([]byte(`["not", "an", "object"]`), FormatJSON, nil)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a": {}} {"b": {}}`), FormatJSON, nil)
	assert.Error(t, err)

	_, err = Parse([]byte("- a\n- b\n"), FormatYAML, nil)
	assert.Error(t, err)
}

func TestParse_UnknownTransformName(t *testing.T) {
	data := `
[app.token]
doc = "token"
type = "other"
transform = "base64"
required = true
`
	s, err := Parse([]byte(data), FormatTOML, nil)
	require.NoError(t, err)

	_, err = envariability.Resolve(s.Tree, append(s.Options(), envariability.WithEnvironment(nil))...)
	var mismatch *envariability.SchemaMismatchError
	assert.True(t, errors.As(err, &mismatch), "expected SchemaMismatchError, got %v", err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSchema), 0644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, s.Tree.Keys)

	_, err = Load(filepath.Join(dir, "missing.toml"), nil)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "schema.ini"), nil)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml": FormatTOML,
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("schema")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_APP_PORT=9090\nTEST_APP_ENABLED=true\n"), 0644))

	env, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TEST_APP_PORT": "9090", "TEST_APP_ENABLED": "true"}, env)

	_, err = LoadEnvFile(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"duration", "list", "lower", "trim", "upper", "url"}, r.Names())

	opts := envariability.DefaultOptions()
	apply := func(name, raw string) (any, error) {
		tr, ok := r.Lookup(name)
		require.True(t, ok, name)
		return tr.Transform(raw, opts)
	}

	v, err := apply("trim", "  x ")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = apply("duration", "1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)

	v, err = apply("url", "https://example.com/path")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", v)

	_, err = apply("url", "relative/path")
	assert.Error(t, err)

	opts.Custom = map[string]any{ListSeparatorKey: ";"}
	v, err = apply("list", "a; b;;c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)

	r.Register("upper", func(raw string, _ *envariability.Options) (any, error) { return "replaced", nil })
	v, err = apply("upper", "x")
	require.NoError(t, err)
	assert.Equal(t, "replaced", v)
}

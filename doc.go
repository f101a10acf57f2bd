// Package envariability resolves a nested configuration schema from
// environment variables and renders the same schema as documentation.
//
// # Schema
//
// A schema is a tree of groups (maps keyed by name) whose leaves are
// configuration elements:
//
//	schema := map[string]any{
//	    "app": map[string]any{
//	        "port": envariability.Element{Doc: "listen port", Type: envariability.TypeInteger, Required: true, Default: 8080},
//	        "hosts": envariability.Element{Doc: "upstreams", Type: envariability.TypeArray},
//	    },
//	}
//
// Leaves may also be written as maps with the descriptor properties doc,
// type, required, default and transform, which is how schema files decode.
//
// # Environment variable names
//
// The name of an element is the prefix followed, for every key from the root
// down, by the word separator and the transformed key. With prefix "TEST"
// the element above is read from TEST_APP_PORT.
//
// # Resolution and documentation
//
// Resolve and Document share one depth-first traversal. Resolve maps each
// element to its value and merges them into a *Config; Document maps each
// element to a Markdown table row and joins the rows:
//
//	cfg, err := envariability.Resolve(schema, envariability.WithPrefix("TEST"))
//	table, err := envariability.Document(schema, envariability.WithPrefix("TEST"))
//
// Unless WithImmutable(false) is given, the returned *Config and every group
// in it reject Set with ErrImmutable.
package envariability

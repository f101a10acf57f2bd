// Package conf loads the defaults of the envariability command line tool.
//
// The global Configuration is loaded at package initialization and turned
// into resolution options with Config.Options:
//
//	cfg, err := envariability.Resolve(schema, conf.Configuration.Options()...)
//
// # Load Order
//
//  1. Embedded defaults (default.toml)
//  2. Main config file: /etc/envariability/config.toml
//  3. Drop-in files: /etc/envariability/config.toml.d/*.toml, in lexicographic order
//
// Keys not set by a layer keep the value of the layer below it. configDTO
// uses pointer fields so "not set" can be told apart from a zero value.
package conf

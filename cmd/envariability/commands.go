package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/salesforce/envariability"
	"github.com/salesforce/envariability/internal/conf"
	"github.com/salesforce/envariability/internal/l10n"
	"github.com/salesforce/envariability/schemafile"
)

func schemaFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:     "schema",
			Aliases:  []string{"s"},
			Usage:    l10n.T("configuration schema `FILE` (.toml, .yaml or .json)"),
			Required: true,
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: l10n.T("prefix of every environment variable name"),
		},
		&cli.StringFlag{
			Name:  "separator",
			Usage: l10n.T("string placed before every key of an environment variable name"),
		},
		&cli.StringFlag{
			Name:  "array-separator",
			Usage: l10n.T("delimiter splitting values of type array"),
		},
		&cli.BoolFlag{
			Name:  "lowercase",
			Usage: l10n.T("lower-case keys in environment variable names instead of upper-casing them"),
		},
	}
}

// loadSchema reads the schema flag and assembles the options shared by all
// commands: tool defaults first, then flags that were given.
func loadSchema(c *cli.Context) (*schemafile.Schema, []envariability.Option, error) {
	s, err := schemafile.Load(c.Path("schema"), nil)
	if err != nil {
		return nil, nil, err
	}
	opts := conf.Configuration.Options()
	opts = append(opts, s.Options()...)
	if c.IsSet("prefix") {
		opts = append(opts, envariability.WithPrefix(c.String("prefix")))
	}
	if c.IsSet("separator") {
		opts = append(opts, envariability.WithWordSeparator(c.String("separator")))
	}
	if c.IsSet("array-separator") {
		opts = append(opts, envariability.WithArraySeparator(c.String("array-separator")))
	}
	if c.Bool("lowercase") {
		opts = append(opts, envariability.WithNameTransform(strings.ToLower))
	}
	return s, opts, nil
}

func resolveCommand() *cli.Command {
	flags := append(schemaFlags(),
		&cli.PathFlag{
			Name:  "env-file",
			Usage: l10n.T("read the environment from a dotenv `FILE` instead of the process"),
		},
		&cli.BoolFlag{
			Name:  "inherit-env",
			Usage: l10n.T("with --env-file, fall back to the process environment for unset variables"),
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: l10n.T("custom option `KEY=VALUE` passed to transforms"),
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: l10n.T("output format: json or toml"),
			Value: "json",
		},
	)
	return &cli.Command{
		Name:   "resolve",
		Usage:  l10n.T("resolve a schema against the environment and print the configuration"),
		Flags:  flags,
		Action: resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	s, opts, err := loadSchema(c)
	if err != nil {
		return err
	}
	if path := c.Path("env-file"); path != "" {
		env, err := schemafile.LoadEnvFile(path)
		if err != nil {
			return err
		}
		if c.Bool("inherit-env") {
			merged := envariability.Environ()
			maps.Copy(merged, env)
			env = merged
		}
		opts = append(opts, envariability.WithEnvironment(env))
	}
	for _, kv := range c.StringSlice("set") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf(l10n.T("invalid custom option %q, expected KEY=VALUE"), kv)
		}
		opts = append(opts, envariability.WithCustom(key, value))
	}

	cfg, err := envariability.Resolve(s.Tree, opts...)
	if err != nil {
		return err
	}

	w := c.App.Writer
	switch format := c.String("format"); format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(withoutNil(cfg.Map()))
	default:
		return fmt.Errorf(l10n.T("unknown output format %q"), format)
	}
}

// withoutNil drops unset values, which TOML cannot represent.
func withoutNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, v := range m {
		switch val := v.(type) {
		case nil:
		case map[string]any:
			out[key] = withoutNil(val)
		default:
			out[key] = v
		}
	}
	return out
}

func docCommand() *cli.Command {
	flags := append(schemaFlags(),
		&cli.StringSliceFlag{
			Name:  "column",
			Usage: l10n.T("documentation column `PROPERTY[=TITLE]`, repeatable, in order"),
		},
	)
	return &cli.Command{
		Name:   "doc",
		Usage:  l10n.T("print a Markdown table documenting every environment variable of a schema"),
		Flags:  flags,
		Action: docAction,
	}
}

func docAction(c *cli.Context) error {
	s, opts, err := loadSchema(c)
	if err != nil {
		return err
	}
	columns, err := parseColumns(c.StringSlice("column"))
	if err != nil {
		return err
	}
	// Documentation never reads values.
	opts = append(opts, envariability.WithColumns(columns...), envariability.WithEnvironment(nil))

	table, err := envariability.Document(s.Tree, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, table)
	return err
}

func parseColumns(entries []string) ([]envariability.Column, error) {
	var columns []envariability.Column
	for _, entry := range entries {
		property, title, ok := strings.Cut(entry, "=")
		if !ok {
			title = property
		}
		if property == "" {
			return nil, fmt.Errorf(l10n.T("invalid column %q"), entry)
		}
		columns = append(columns, envariability.Column{Property: property, Name: title})
	}
	return columns, nil
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: l10n.T("print the JSON schema every configuration element satisfies"),
		Action: func(c *cli.Context) error {
			data, err := json.MarshalIndent(envariability.DescriptorSchema(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, string(data))
			return err
		},
	}
}

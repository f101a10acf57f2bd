package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/salesforce/envariability/internal/conf"
	"github.com/salesforce/envariability/internal/l10n"
)

// Version is set at build time.
var Version = "dev"

func newApp() *cli.App {
	return &cli.App{
		Name:    "envariability",
		Version: Version,
		Usage:   l10n.T("resolve and document configuration read from environment variables"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: l10n.T("log every configuration element as it is resolved"),
			},
		},
		Before: func(c *cli.Context) error {
			level := conf.Configuration.LogLevel
			if c.Bool("debug") {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
		Commands: []*cli.Command{
			resolveCommand(),
			docCommand(),
			schemaCommand(),
		},
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		os.Exit(1)
	}
}

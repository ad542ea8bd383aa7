package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"punktual/internal/config"
	appLog "punktual/internal/log"
)

const version = "0.3.0"

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		appLog.Error("punktual failed", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "punktual",
		Usage:   "Build add-to-calendar links and embeddable button code.",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "punktual.yaml", Usage: "Path to config file (created on first run)"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "Optional .env file loaded before the config"},
			&cli.StringFlag{Name: "log-level", Usage: "Override log level (debug, info, warn, error)"},
		},
		Before: setup,
		Commands: []*cli.Command{
			serveCommand(),
			linksCommand(),
			generateCommand(),
			occurrencesCommand(),
			previewCommand(),
			importCommand(),
		},
	}
}

// setup loads .env and config, applies the log level and stores the config
// for the subcommands.
func setup(c *cli.Context) error {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		appLog.Warn("could not load env file", "path", c.String("env-file"), "err", err)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		if cfg == nil {
			return fmt.Errorf("load config %s: %w", c.String("config"), err)
		}
		appLog.Warn("could not write default config; continuing with defaults", "config_path", c.String("config"), "err", err)
	}

	level := cfg.LogLevel
	if c.String("log-level") != "" {
		level = c.String("log-level")
	}
	appLog.SetLevel(appLog.ParseLevel(level))

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg

	appLog.Debug("effective config",
		"listen", cfg.Listen,
		"base_url", cfg.BaseURL,
		"log_level", level,
		"short_link", cfg.ShortLink.Endpoint != "",
		"basic_auth", cfg.BasicAuth != nil,
	)
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/Redblueflame/env-config/internal/cli/config"
	"github.com/Redblueflame/env-config/internal/cli/output"
	"github.com/Redblueflame/env-config/internal/infra/buildinfo"
	"github.com/Redblueflame/env-config/internal/telemetry/logger"
)

// Exit codes.
const (
	exitInvalid  = 1
	exitUnusable = 2
)

const (
	metaSettings = "settings"
	metaLogger   = "logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "envconfig",
		Usage:   "Check configuration files and environment variables against a schema",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			DescribeCommand(),
			CheckCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "settings",
			Usage:   "CLI settings file",
			EnvVars: []string{config.EnvPrefix + "SETTINGS"},
		},
	}
}

// setup loads the CLI settings, applies flag overrides and builds the
// logger.
func setup(c *cli.Context) error {
	settings, err := config.Load(c.String("settings"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("settings: %v", err), exitUnusable)
	}

	override := func(flag string, dst **string) {
		if c.IsSet(flag) {
			v := c.String(flag)
			*dst = &v
		}
	}
	override("output", &settings.Output)
	override("log-level", &settings.LogLevel)
	override("log-format", &settings.LogFormat)

	if _, err := output.ParseFormat(settings.OutputFormat()); err != nil {
		return cli.Exit(err.Error(), exitUnusable)
	}

	log, err := logger.New(logger.Config{
		Level:  settings.Level(),
		Format: settings.Format(),
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return cli.Exit(err.Error(), exitUnusable)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaSettings] = settings
	c.App.Metadata[metaLogger] = log
	return nil
}

// GetSettings retrieves the CLI settings from context.
func GetSettings(c *cli.Context) *config.Settings {
	if s, ok := c.App.Metadata[metaSettings].(*config.Settings); ok {
		return s
	}
	return &config.Settings{}
}

// GetLogger retrieves the logger from context.
func GetLogger(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata[metaLogger].(*slog.Logger); ok {
		return l
	}
	return logger.Discard()
}

// render writes data to the app writer in the selected format.
func render(c *cli.Context, data any) error {
	format, _ := output.ParseFormat(GetSettings(c).OutputFormat())
	return output.NewFormatter(format, c.Bool("wide")).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return io.Discard
}

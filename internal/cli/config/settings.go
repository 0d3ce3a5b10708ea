package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Redblueflame/env-config/pkg/envconfig"
)

// EnvPrefix is the prefix of the CLI's own environment variables.
const EnvPrefix = "ENVCONFIG_"

// Settings is the CLI configuration. Every field is optional.
type Settings struct {
	Output    *string `koanf:"output" validate:"omitempty,oneof=table json yaml"`
	LogLevel  *string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat *string `koanf:"log_format" validate:"omitempty,oneof=text json"`
	// EnvPrefix is the default prefix for the check command.
	EnvPrefix *string `koanf:"env_prefix"`
}

// Default values.
const (
	DefaultOutput    = "table"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "envconfig", "cli.yaml")
}

// Load assembles the settings from path and the environment.
// An empty path means DefaultPath, which may be absent; an explicit path
// must exist.
func Load(path string, opts ...envconfig.Option) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	opts = append([]envconfig.Option{
		envconfig.WithEnvPrefix(EnvPrefix),
		envconfig.WithLogger(nil),
	}, opts...)

	return envconfig.Load[Settings](path, opts...)
}

// OutputFormat returns the configured output format or the default.
func (s *Settings) OutputFormat() string {
	return valueOr(s.Output, DefaultOutput)
}

// Level returns the configured log level or the default.
func (s *Settings) Level() string {
	return valueOr(s.LogLevel, DefaultLogLevel)
}

// Format returns the configured log format or the default.
func (s *Settings) Format() string {
	return valueOr(s.LogFormat, DefaultLogFormat)
}

// Prefix returns the configured environment prefix for checked schemas.
func (s *Settings) Prefix() string {
	return valueOr(s.EnvPrefix, "")
}

func valueOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

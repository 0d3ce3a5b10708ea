// Package config provides the envconfig CLI settings.
//
// Settings come from an optional YAML file (~/.config/envconfig/cli.yaml)
// and ENVCONFIG_* environment variables, assembled with the envconfig
// library itself. Command-line flags override both.
package config

// Package main provides the entry point for the envconfig CLI.
//
// The CLI checks configuration sources against a schema file:
//
//   - describe: list the schema fields and their environment variables
//   - check: assemble a configuration file and the environment, and
//     report every missing or malformed field in one run
//   - version: build information
//
// Usage:
//
//	envconfig describe --schema schema.yaml
//	envconfig check --schema schema.yaml --env-prefix APP_ config.toml
//	envconfig -o json check --schema schema.yaml
package main

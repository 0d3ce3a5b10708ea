// Package command provides the envconfig CLI commands.
//
// It uses urfave/cli/v2:
//
//   - root.go: application, global flags, settings and logger setup
//   - describe.go: print the fields of a schema file
//   - check.go: assemble a configuration file and the environment
//     against a schema file and report every problem
//   - version.go: build information
//
// Exit codes: 0 on success, 1 when a configuration is invalid, 2 when a
// source or schema cannot be used at all.
package command

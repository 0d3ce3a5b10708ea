// Package main provides the entry point for the envconfig CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Redblueflame/env-config/internal/cli/command"
)

func main() {
	app := command.App()

	// Exit codes carried by cli.Exit are handled inside Run.
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

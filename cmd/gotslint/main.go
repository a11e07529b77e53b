// Package main is the entry point for the gotslint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gotslint/internal/cli"
	"github.com/yaklabco/gotslint/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/gotslint/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Lint outcomes are already reported; only real errors are logged.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Silent() {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}

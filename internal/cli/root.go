// Package cli provides the Cobra command structure for gotslint.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
)

// BuildInfo is stamped into main by the linker.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type globalFlags struct {
	debug      bool
	configPath string
	color      string
	logFormat  string
}

//nolint:gochecknoglobals // Read-only list of accepted --color values.
var colorModes = []string{"auto", "always", "never"}

// NewRootCommand builds the gotslint command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "gotslint",
		Short: "A fast, self-fixing linter for TypeScript and JavaScript",
		Long: `gotslint lints TypeScript and JavaScript with tslint-compatible
configuration. Each file is parsed once, every enabled rule walks the same
tree, and rule fixes are applied in passes until the source is stable.

Custom rules are Starlark scripts loaded from --rules-dir.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return flags.apply()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&flags.logFormat, "log-format", "text", "diagnostic log format: text, json, logfmt")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newLintCommand(info),
		newRulesCommand(),
		newInitCommand(),
		newDocsCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(root)

	return root
}

func (f *globalFlags) apply() error {
	if !slices.Contains(colorModes, f.color) {
		return usageError(fmt.Errorf("invalid --color %q (want auto, always or never)", f.color))
	}
	if err := logging.SetFormat(f.logFormat); err != nil {
		return usageError(err)
	}
	if f.debug {
		logging.SetLevel("debug")
	}
	return nil
}

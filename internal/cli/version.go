package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
)

type versionOutput struct {
	BuildInfo
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date and Go toolchain of this binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := versionOutput{
				BuildInfo: info,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return &ExitError{Code: ExitIO, Err: fmt.Errorf("write version: %w", err)}
				}
				return nil
			}

			logging.NewInteractive(cmd.OutOrStdout()).Info("gotslint",
				logging.FieldVersion, out.Version,
				logging.FieldCommit, out.Commit,
				logging.FieldBuilt, out.Date,
				"go", out.GoVersion,
				"platform", out.Platform,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

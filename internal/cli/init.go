package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotslint/internal/configloader"
	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

// configTemplate is the document written by init. Field order is the
// order keys appear in the file.
type configTemplate struct {
	Extends         []string       `json:"extends" yaml:"extends" toml:"extends"`
	DefaultSeverity string         `json:"defaultSeverity" yaml:"defaultSeverity" toml:"defaultSeverity"`
	LinterOptions   linterTemplate `json:"linterOptions" yaml:"linterOptions" toml:"linterOptions"`
	Rules           map[string]any `json:"rules" yaml:"rules" toml:"rules"`
}

type linterTemplate struct {
	Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

//nolint:gochecknoglobals // Read-only lookup table.
var initFileNames = map[configloader.Format]string{
	configloader.FormatJSON: "tslint.json",
	configloader.FormatYAML: "tslint.yaml",
	configloader.FormatTOML: ".gotslint.toml",
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gotslint configuration file",
		Long: `Create a new configuration file in the current directory that extends
the recommended preset. The file can be customized to enable or disable
rules, change severities, and exclude files.

Examples:
  gotslint init                      Create tslint.json
  gotslint init --full               List every rule with its default options
  gotslint init --format yaml        Create tslint.yaml instead
  gotslint init --format toml        Create .gotslint.toml instead
  gotslint init --output custom.json Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "List every built-in rule with its default options")
	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json, yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: tslint.json, tslint.yaml or .gotslint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	format := configloader.Format(flags.format)
	defaultName, ok := initFileNames[format]
	if !ok {
		return usageError(fmt.Errorf("invalid format %q: must be json, yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := GenerateTemplate(format, flags.full)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("the file lists every built-in rule with its default options")
	}
	logger.Info("run 'gotslint rules --verbose' to see the options each rule accepts")

	return nil
}

// GenerateTemplate renders a starter configuration. With full set, every
// built-in rule is listed with its default options.
func GenerateTemplate(format configloader.Format, full bool) ([]byte, error) {
	doc := configTemplate{
		Extends:         []string{configloader.DefaultExtends},
		DefaultSeverity: string(config.SeverityError),
		LinterOptions:   linterTemplate{Exclude: []string{"node_modules/**", "**/*.d.ts"}},
		Rules:           map[string]any{},
	}
	if full {
		for name, rc := range rules.AllPreset().Rules {
			if format == configloader.FormatTOML {
				doc.Rules[name] = tomlRuleValue(rc)
			} else {
				doc.Rules[name] = rc.Value()
			}
		}
	}

	var buf bytes.Buffer
	switch format {
	case configloader.FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
	case configloader.FormatYAML:
		buf.WriteString("# gotslint configuration\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
	case configloader.FormatTOML:
		buf.WriteString("# gotslint configuration\n")
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encode TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

// tomlRuleValue writes rule arguments in the object form so that arrays
// stay homogeneous.
func tomlRuleValue(rc config.RuleConfig) any {
	if len(rc.Args) == 0 && rc.Severity == "" {
		return rc.IsEnabled()
	}
	out := map[string]any{}
	if rc.Severity != "" {
		out["severity"] = string(rc.Severity)
	}
	switch {
	case len(rc.Args) == 1:
		out["options"] = rc.Args[0]
	case len(rc.Args) > 1:
		out["options"] = rc.Args
	}
	return out
}

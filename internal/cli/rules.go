package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/lint"
)

type rulesFlags struct {
	verbose bool
	format  string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Category           string       `json:"category"`
	Fixable            bool         `json:"fixable"`
	TypeScriptOnly     bool         `json:"typescriptOnly"`
	RequiresTypeInfo   bool         `json:"requiresTypeInfo"`
	Rationale          string       `json:"rationale,omitempty"`
	OptionsDescription string       `json:"optionsDescription,omitempty"`
	Options            *lint.Schema `json:"options,omitempty"`
	OptionExamples     []string     `json:"optionExamples,omitempty"`
}

func newRuleInfo(meta lint.Metadata, verbose bool) ruleInfo {
	info := ruleInfo{
		Name:             meta.Name,
		Description:      meta.Description,
		Category:         string(meta.Category),
		Fixable:          meta.HasFix,
		TypeScriptOnly:   meta.TypeScriptOnly,
		RequiresTypeInfo: meta.RequiresTypeInfo,
	}
	if verbose {
		info.Rationale = meta.Rationale
		info.OptionsDescription = meta.OptionsDescription
		info.Options = meta.OptionsSchema
		info.OptionExamples = meta.OptionExamples
	}
	return info
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all built-in lint rules with their category, description and
whether they support auto-fixing. With --verbose, the options each rule
accepts and example configurations are shown as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), rules, flags.verbose)
			case "text", "":
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())

			if len(rules) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")
			for _, rule := range rules {
				meta := rule.Metadata()
				fixable := "-"
				if meta.HasFix {
					fixable = "yes"
				}
				logger.Info(meta.Name,
					logging.FieldCategory, meta.Category,
					logging.FieldFixable, fixable,
					logging.FieldDescription, meta.Description,
				)
				if flags.verbose {
					writeRuleDetails(cmd.OutOrStdout(), meta)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show rule options and examples")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// writeRuleDetails prints the options documentation of one rule, indented
// under its log line.
func writeRuleDetails(w io.Writer, meta lint.Metadata) {
	const indent = "    "
	if meta.OptionsDescription != "" {
		fmt.Fprintf(w, "%soptions: %s\n", indent, meta.OptionsDescription)
	}
	if meta.OptionsSchema != nil {
		schema, err := json.Marshal(meta.OptionsSchema)
		if err == nil {
			fmt.Fprintf(w, "%sschema: %s\n", indent, schema)
		}
	}
	if len(meta.OptionExamples) > 0 {
		fmt.Fprintf(w, "%sexamples: %s\n", indent, strings.Join(meta.OptionExamples, ", "))
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule, verbose bool) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, newRuleInfo(rule.Metadata(), verbose))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/lint"
)

const docsDirPermissions = 0o755

type docsFlags struct {
	out  string
	html bool
}

func newDocsCommand() *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate rule documentation",
		Long: `Write one Markdown page per built-in rule plus an index page to the
output directory. With --html, each page is also rendered to HTML.

Examples:
  gotslint docs --out docs/rules
  gotslint docs --out site --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "docs/rules", "output directory")
	cmd.Flags().BoolVar(&flags.html, "html", false, "also render every page to HTML")

	return cmd
}

func runDocs(cmd *cobra.Command, flags *docsFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.out == "" {
		return usageError(fmt.Errorf("--out must not be empty"))
	}

	pages := map[string][]byte{"index": RenderRuleIndex(lint.DefaultRegistry.Rules())}
	for _, rule := range lint.DefaultRegistry.Rules() {
		meta := rule.Metadata()
		pages[meta.Name] = RenderRuleDoc(meta)
	}

	if err := os.MkdirAll(flags.out, docsDirPermissions); err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("create output directory: %w", err)}
	}

	md := newDocsMarkdown()
	for name, content := range pages {
		if err := writeDocPage(flags.out, name+".md", content); err != nil {
			return err
		}
		if !flags.html {
			continue
		}
		var buf bytes.Buffer
		if err := md.Convert(content, &buf); err != nil {
			return &ExitError{Code: ExitInternal, Err: fmt.Errorf("render %s: %w", name, err)}
		}
		if err := writeDocPage(flags.out, name+".html", wrapHTML(name, buf.Bytes())); err != nil {
			return err
		}
	}

	logger.Info("wrote rule documentation",
		logging.FieldPath, flags.out,
		"pages", len(pages),
	)
	return nil
}

func newDocsMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
}

func writeDocPage(dir, name string, content []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("write %s: %w", name, err)}
	}
	return nil
}

func wrapHTML(title string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		title)
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

// RenderRuleIndex renders a Markdown table linking every rule page.
func RenderRuleIndex(rules []lint.Rule) []byte {
	var b strings.Builder
	b.WriteString("# Rules\n\n")
	b.WriteString("| Rule | Category | Fixable | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, rule := range rules {
		meta := rule.Metadata()
		fixable := ""
		if meta.HasFix {
			fixable = "yes"
		}
		fmt.Fprintf(&b, "| [%s](%s.md) | %s | %s | %s |\n",
			meta.Name, meta.Name, meta.Category, fixable, escapeTableCell(meta.Description))
	}
	return []byte(b.String())
}

// RenderRuleDoc renders the documentation page of one rule.
func RenderRuleDoc(meta lint.Metadata) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", meta.Name)
	b.WriteString(meta.Description)
	b.WriteString("\n\n")

	if meta.Rationale != "" {
		b.WriteString("## Rationale\n\n")
		b.WriteString(meta.Rationale)
		b.WriteString("\n\n")
	}

	b.WriteString("## Details\n\n")
	fmt.Fprintf(&b, "- Category: %s\n", meta.Category)
	fmt.Fprintf(&b, "- Has fix: %s\n", yesNo(meta.HasFix))
	fmt.Fprintf(&b, "- TypeScript only: %s\n", yesNo(meta.TypeScriptOnly))
	fmt.Fprintf(&b, "- Requires type info: %s\n", yesNo(meta.RequiresTypeInfo))
	if meta.DefaultSeverity != "" {
		fmt.Fprintf(&b, "- Default severity: %s\n", meta.DefaultSeverity)
	}
	b.WriteString("\n")

	b.WriteString("## Options\n\n")
	if meta.OptionsDescription == "" {
		b.WriteString("Not configurable.\n\n")
	} else {
		b.WriteString(meta.OptionsDescription)
		b.WriteString("\n\n")
	}
	if meta.OptionsSchema != nil {
		if schema, err := json.MarshalIndent(meta.OptionsSchema, "", "  "); err == nil {
			b.WriteString("```json\n")
			b.Write(schema)
			b.WriteString("\n```\n\n")
		}
	}

	if len(meta.OptionExamples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, example := range meta.OptionExamples {
			fmt.Fprintf(&b, "```yaml\n%s: %s\n```\n\n", meta.Name, example)
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

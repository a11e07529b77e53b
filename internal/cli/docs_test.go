package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
)

func TestRenderRuleDoc(t *testing.T) {
	t.Parallel()

	rule, ok := lint.DefaultRegistry.Get("semicolon")
	require.True(t, ok)

	doc := string(RenderRuleDoc(rule.Metadata()))
	assert.Contains(t, doc, "# semicolon\n")
	assert.Contains(t, doc, "- Has fix: yes")
	assert.Contains(t, doc, "## Options")
	assert.Contains(t, doc, "```json\n")
}

func TestRenderRuleDoc_NotConfigurable(t *testing.T) {
	t.Parallel()

	doc := string(RenderRuleDoc(lint.Metadata{
		Name:        "example-rule",
		Description: "Example.",
		Category:    lint.CategoryStyle,
	}))
	assert.Contains(t, doc, "Not configurable.")
	assert.NotContains(t, doc, "## Rationale")
	assert.NotContains(t, doc, "## Examples")
}

func TestRenderRuleIndex(t *testing.T) {
	t.Parallel()

	index := string(RenderRuleIndex(lint.DefaultRegistry.Rules()))
	assert.Contains(t, index, "| [semicolon](semicolon.md) | ")
	assert.Contains(t, index, "| [no-debugger](no-debugger.md) | ")
}

func TestDocsCommand_WritesPages(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "site")
	cmd := newDocsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out", out, "--html"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"index.md", "index.html", "semicolon.md", "semicolon.html"} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), `<a href="semicolon.md">semicolon</a>`)
}

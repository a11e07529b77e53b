package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/internal/cli"
)

func TestLintCommand_FormatFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	flag := lintCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "format flag should exist")
	assert.Equal(t, "prose", flag.DefValue)
	assert.Equal(t, "t", flag.Shorthand)
	for _, format := range []string{"prose", "stylish", "json", "sarif", "diff", "summary"} {
		assert.Contains(t, flag.Usage, format, "format flag help should list %q", format)
	}
}

func TestLintCommand_OutputFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		defValue string
	}{
		{name: "show-rule", defValue: "false"},
		{name: "no-context", defValue: "false"},
		{name: "compact", defValue: "false"},
		{name: "per-file", defValue: "true"},
		{name: "summary-files-first", defValue: "false"},
		{name: "summary-sort", defValue: "count"},
		{name: "include-vendored", defValue: "false"},
	}

	for _, tt := range tests {
		flag := lintCmd.Flags().Lookup(tt.name)
		if assert.NotNil(t, flag, "%s flag should exist", tt.name) {
			assert.Equal(t, tt.defValue, flag.DefValue, "default of %s", tt.name)
		}
	}
}

func TestLintCommand_LongDescriptionListsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	for _, code := range []string{"64", "65", "70", "74"} {
		assert.Contains(t, lintCmd.Long, code)
	}
}

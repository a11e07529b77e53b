package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
)

func TestRulesCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
	format := cmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json"})
	require.NoError(t, cmd.Execute())

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.Len(t, infos, len(lint.DefaultRegistry.Rules()))

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
		assert.NotEmpty(t, info.Description, "rule %s", info.Name)
		assert.Empty(t, info.Rationale, "non-verbose output omits rationale")
	}
	assert.IsNonDecreasing(t, names, "rules are listed by name")
	assert.Contains(t, names, "semicolon")
}

func TestRulesCommand_VerboseJSON(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json", "--verbose"})
	require.NoError(t, cmd.Execute())

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))

	var semicolon *ruleInfo
	for i := range infos {
		if infos[i].Name == "semicolon" {
			semicolon = &infos[i]
		}
	}
	require.NotNil(t, semicolon)
	assert.True(t, semicolon.Fixable)
	assert.NotEmpty(t, semicolon.OptionsDescription)
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

package fix_test

import (
	"strings"
	"testing"

	godiff "github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fix"
)

func TestGenerateDiff_NoChanges(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("a.ts", []byte("x\n"), []byte("x\n"))
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestGenerateDiff_SingleChange(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("src/a.ts", []byte("let a = 1\nlet b = 2\n"), []byte("let a = 1;\nlet b = 2\n"))
	require.NoError(t, err)
	require.True(t, d.HasChanges())

	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	out := d.String()
	assert.Contains(t, out, "diff --git a/src/a.ts b/src/a.ts")
	assert.Contains(t, out, "--- a/src/a.ts")
	assert.Contains(t, out, "+++ b/src/a.ts")
	assert.Contains(t, out, "@@ -1,2 +1,2 @@")
	assert.Contains(t, out, "-let a = 1\n+let a = 1;\n let b = 2\n")
}

func TestGenerateDiff_RoundTripsThroughParser(t *testing.T) {
	t.Parallel()

	var orig, mod []string
	for i := range 30 {
		line := strings.Repeat("x", i)
		orig = append(orig, line)
		if i == 2 || i == 25 {
			line += ";"
		}
		mod = append(mod, line)
	}

	d, err := fix.GenerateDiff("a.ts", []byte(strings.Join(orig, "\n")+"\n"), []byte(strings.Join(mod, "\n")+"\n"))
	require.NoError(t, err)

	parsed, err := godiff.ParseFileDiff([]byte(d.String()))
	require.NoError(t, err)
	require.Len(t, parsed.Hunks, 2, "distant changes produce separate hunks")
	assert.Equal(t, int32(1), parsed.Hunks[0].OrigStartLine)
	assert.Equal(t, int32(23), parsed.Hunks[1].OrigStartLine)
}

func TestGenerateDiff_FinalNewline(t *testing.T) {
	t.Parallel()

	const marker = `\ No newline at end of file`

	tests := []struct {
		name     string
		original string
		modified string
		want     string
	}{
		{
			name:     "newline added",
			original: "const a = 1;",
			modified: "const a = 1;\n",
			want:     "@@ -1,1 +1,1 @@\n-const a = 1;\n" + marker + "\n+const a = 1;\n",
		},
		{
			name:     "newline removed",
			original: "a();\nb();\n",
			modified: "a();\nb();",
			want:     "@@ -1,2 +1,2 @@\n a();\n-b();\n+b();\n" + marker + "\n",
		},
		{
			name:     "unterminated context line",
			original: "let a = 1\nb()",
			modified: "let a = 1;\nb()",
			want:     "@@ -1,2 +1,2 @@\n-let a = 1\n+let a = 1;\n b()\n" + marker + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := fix.GenerateDiff("a.ts", []byte(tt.original), []byte(tt.modified))
			require.NoError(t, err)
			require.True(t, d.HasChanges())
			assert.Equal(t, 1, d.Additions)
			assert.Equal(t, 1, d.Deletions)

			out := d.String()
			assert.Contains(t, out, tt.want)

			parsed, err := godiff.ParseFileDiff([]byte(out))
			require.NoError(t, err)
			require.Len(t, parsed.Hunks, 1)
			assert.Equal(t, d.File.Hunks[0].Body, parsed.Hunks[0].Body)
		})
	}
}

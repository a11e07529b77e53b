package langdetect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotslint/pkg/langdetect"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

func TestDialect_ByExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected tsast.Dialect
	}{
		{"a.ts", tsast.DialectTS},
		{"a.d.ts", tsast.DialectTS},
		{"A.TSX", tsast.DialectTSX},
		{"lib/index.mjs", tsast.DialectJS},
		{"view.jsx", tsast.DialectJSX},
		{"config.cts", tsast.DialectTS},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Dialect(tt.path, nil))
		})
	}
}

func TestDialect_Shebang(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tsast.DialectJS, langdetect.Dialect("bin/tool", []byte("#!/usr/bin/env node\nconsole.log(1);\n")))
}

func TestIsLintable(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsLintable("src/index.ts"))
	assert.False(t, langdetect.IsLintable("README.md"))
	assert.False(t, langdetect.IsLintable("node_modules/lodash/index.js"))
	assert.True(t, langdetect.IsLintable("src/types.d.ts"))
	assert.True(t, langdetect.IsLintable("globals.d.ts"))
	assert.False(t, langdetect.IsLintable("node_modules/@types/node/index.d.ts"))
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	minified := []byte(strings.Repeat("var a=1;", 40) + "\n")
	sourceMapped := []byte("export const a = 1;\n//# sourceMappingURL=index.js.map\n")

	assert.True(t, langdetect.IsGenerated("lib/index.js", minified))
	assert.True(t, langdetect.IsGenerated("lib/index.js", sourceMapped))
	assert.False(t, langdetect.IsGenerated("src/index.ts", []byte("export const a = 1;\n")))
}

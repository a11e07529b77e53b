// Package langdetect decides which grammar a source file is parsed with
// and which files are worth linting at all. It uses go-enry for the cases
// a file extension cannot settle.
package langdetect

import (
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Language names as reported by go-enry.
const (
	enryTypeScript = "TypeScript"
	enryTSX        = "TSX"
	enryJavaScript = "JavaScript"
)

var extensionDialects = map[string]tsast.Dialect{
	".ts":  tsast.DialectTS,
	".mts": tsast.DialectTS,
	".cts": tsast.DialectTS,
	".tsx": tsast.DialectTSX,
	".js":  tsast.DialectJS,
	".mjs": tsast.DialectJS,
	".cjs": tsast.DialectJS,
	".jsx": tsast.DialectJSX,
}

// Extensions returns the file extensions linted by default.
func Extensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}
}

// Dialect returns the grammar for a file. The extension decides when it is
// known; otherwise the shebang and then the content classifier are consulted.
// Unrecognised content is treated as TypeScript, which accepts plain JavaScript.
func Dialect(path string, content []byte) tsast.Dialect {
	if d, ok := extensionDialects[strings.ToLower(filepath.Ext(path))]; ok {
		return d
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if d, ok := fromEnry(lang); ok {
			return d
		}
	}

	candidates := []string{enryTypeScript, enryTSX, enryJavaScript}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe {
		if d, ok := fromEnry(lang); ok {
			return d
		}
	}

	return tsast.DialectTS
}

func fromEnry(lang string) (tsast.Dialect, bool) {
	switch lang {
	case enryTypeScript:
		return tsast.DialectTS, true
	case enryTSX:
		return tsast.DialectTSX, true
	case enryJavaScript:
		return tsast.DialectJS, true
	default:
		return "", false
	}
}

// IsLintable reports whether path has a lintable extension and is not
// vendored (node_modules, bower_components, minified bundles and the like).
func IsLintable(path string) bool {
	if _, ok := extensionDialects[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}
	return !IsVendored(path)
}

// IsVendored reports whether path lies in third-party code. go-enry
// flags every declaration file as vendored; for those only the directory
// decides.
func IsVendored(path string) bool {
	slashed := filepath.ToSlash(path)
	if strings.HasSuffix(strings.ToLower(slashed), ".d.ts") {
		dir := pathpkg.Dir(slashed)
		return dir != "." && enry.IsVendor(dir+"/")
	}
	return enry.IsVendor(slashed)
}

// IsGenerated reports whether the file looks machine generated, such as
// minified output or a bundle ending in a source map reference.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, content)
}

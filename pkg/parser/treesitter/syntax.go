package treesitter

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// describeSyntaxErrors asks esbuild for a readable message and position.
// When esbuild accepts the text the first tree-sitter error node is used.
func describeSyntaxErrors(file *tsast.SourceFile, fallback *tsast.Node) []tsast.SyntaxError {
	result := api.Transform(file.Text(), api.TransformOptions{
		Loader:     loader(file.Dialect),
		Sourcefile: file.Path,
		LogLevel:   api.LogLevelSilent,
	})

	var errs []tsast.SyntaxError
	for _, msg := range result.Errors {
		offset := 0
		if msg.Location != nil {
			offset = offsetOf(file, msg.Location.Line, msg.Location.Column)
		}
		errs = append(errs, tsast.SyntaxError{Offset: offset, Message: msg.Text})
	}
	if len(errs) > 0 {
		return errs
	}

	if fallback == nil {
		return []tsast.SyntaxError{{Offset: 0, Message: "Unexpected syntax"}}
	}
	if fallback.Missing {
		return []tsast.SyntaxError{{Offset: fallback.Start, Message: fmt.Sprintf("Expected %q", string(fallback.Kind))}}
	}

	text := fallback.Text()
	if len(text) > 20 {
		text = text[:20] + "..."
	}
	return []tsast.SyntaxError{{Offset: fallback.Start, Message: fmt.Sprintf("Unexpected %q", text)}}
}

func loader(d tsast.Dialect) api.Loader {
	switch d {
	case tsast.DialectTSX:
		return api.LoaderTSX
	case tsast.DialectJS:
		return api.LoaderJS
	case tsast.DialectJSX:
		return api.LoaderJSX
	default:
		return api.LoaderTS
	}
}

// offsetOf converts esbuild's 1-based line and 0-based byte column.
func offsetOf(file *tsast.SourceFile, line, column int) int {
	idx := line - 1
	if idx < 0 || idx >= file.Lines.LineCount() {
		return 0
	}
	info := file.Lines.Line(idx)
	return min(info.StartOffset+max(column, 0), info.BreakOffset)
}

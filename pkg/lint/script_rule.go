package lint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// ScriptRule is a custom rule defined by a Starlark file in a rules
// directory. The script sets `name`, optionally `description` and
// `fixable`, and defines `check(ctx)`.
type ScriptRule struct {
	BaseRule

	// Path is the script file.
	Path string

	// Digest is the hex SHA-256 of the script source as loaded.
	Digest string

	check *starlark.Function
}

// SourceDigest implements SourceDigester.
func (r *ScriptRule) SourceDigest() string {
	return r.Digest
}

// Apply runs the script's check function.
func (r *ScriptRule) Apply(ctx *WalkContext) error {
	thread := &starlark.Thread{
		Name: "rule:" + r.Name(),
		Print: func(_ *starlark.Thread, _ string) {
			// Scripts report through add_failure only.
		},
	}
	stop := context.AfterFunc(ctx.Ctx, func() { thread.Cancel("cancelled") })
	defer stop()

	options, err := toStarlark(ctx.Args())
	if err != nil {
		return fmt.Errorf("convert options: %w", err)
	}

	scriptCtx := starlarkstruct.FromStringDict(starlark.String("context"), starlark.StringDict{
		"path":        starlark.String(ctx.File.Path),
		"text":        starlark.String(ctx.Text()),
		"options":     options,
		"nodes":       starlark.NewBuiltin("nodes", nodesBuiltin(ctx)),
		"add_failure": starlark.NewBuiltin("add_failure", addFailureBuiltin(ctx)),
	})

	if _, err := starlark.Call(thread, r.check, starlark.Tuple{scriptCtx}, nil); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return fmt.Errorf("%s: %s", r.Path, evalErr.Backtrace())
		}
		return fmt.Errorf("%s: %w", r.Path, err)
	}
	return nil
}

func nodesBuiltin(ctx *WalkContext) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var kind string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "kind", &kind); err != nil {
			return nil, err
		}
		nodes := ctx.NodesOfKind(tsast.Kind(kind))
		list := make([]starlark.Value, len(nodes))
		for i, n := range nodes {
			list[i] = starlarkstruct.FromStringDict(starlark.String("node"), starlark.StringDict{
				"kind":  starlark.String(n.Kind),
				"start": starlark.MakeInt(n.Start),
				"end":   starlark.MakeInt(n.End),
				"text":  starlark.String(n.Text()),
			})
		}
		return starlark.NewList(list), nil
	}
}

func addFailureBuiltin(ctx *WalkContext) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			start, end int
			message    string
			fixVal     starlark.Value = starlark.None
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"start", &start, "end", &end, "message", &message, "fix?", &fixVal); err != nil {
			return nil, err
		}
		if start < 0 || end < start || end > ctx.File.Len() {
			return nil, fmt.Errorf("%s: invalid range [%d, %d)", b.Name(), start, end)
		}

		reps, err := replacementsFrom(fixVal)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		ctx.AddFailureWithFix(start, end, message, reps)
		return starlark.None, nil
	}
}

// replacementsFrom converts a list of (start, length, text) tuples.
func replacementsFrom(v starlark.Value) (fix.Fix, error) {
	if v == starlark.None {
		return nil, nil
	}
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("fix must be a list of (start, length, text) tuples, got %s", v.Type())
	}
	defer iter.Done()

	var out fix.Fix
	var item starlark.Value
	for iter.Next(&item) {
		tuple, ok := item.(starlark.Tuple)
		if !ok || len(tuple) != 3 {
			return nil, fmt.Errorf("fix entry must be a (start, length, text) tuple, got %s", item.String())
		}
		start, err := starlark.AsInt32(tuple[0])
		if err != nil {
			return nil, fmt.Errorf("fix start: %w", err)
		}
		length, err := starlark.AsInt32(tuple[1])
		if err != nil {
			return nil, fmt.Errorf("fix length: %w", err)
		}
		text, ok := starlark.AsString(tuple[2])
		if !ok {
			return nil, fmt.Errorf("fix text must be a string, got %s", tuple[2].Type())
		}
		if start < 0 || length < 0 {
			return nil, fmt.Errorf("fix range (%d, %d) is negative", start, length)
		}
		out = append(out, fix.NewReplacement(start, length, text))
	}
	return out, nil
}

func toStarlark(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		if val == float64(int64(val)) {
			return starlark.MakeInt64(int64(val)), nil
		}
		return starlark.Float(val), nil
	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := toStarlark(item)
			if err != nil {
				return nil, err
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil
	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := toStarlark(item)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported option type %T", v)
	}
}

// loadScriptRules loads every *.star file in dir. Problems are returned
// per file so one broken script does not hide the others.
func loadScriptRules(dir string) (map[string]*ScriptRule, []string) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []string{fmt.Sprintf("could not find custom rule directory %q", dir)}
	}
	if !info.IsDir() {
		return nil, []string{fmt.Sprintf("custom rule directory %q is not a directory", dir)}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.star"))
	if err != nil {
		return nil, []string{fmt.Sprintf("scan custom rule directory %q: %v", dir, err)}
	}

	rules := make(map[string]*ScriptRule)
	var problems []string
	for _, file := range files {
		rule, err := loadScriptRule(file)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if prev, ok := rules[rule.Name()]; ok {
			problems = append(problems, fmt.Sprintf("%s: rule %q already defined in %s", file, rule.Name(), prev.Path))
			continue
		}
		rules[rule.Name()] = rule
	}
	return rules, problems
}

func loadScriptRule(path string) (*ScriptRule, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a glob within a configured rules directory
	if err != nil {
		return nil, fmt.Errorf("%s: read custom rule: %w", path, err)
	}

	sum := sha256.Sum256(content)

	thread := &starlark.Thread{
		Name: "load:" + filepath.Base(path),
		Print: func(_ *starlark.Thread, _ string) {
			// Ignore prints during rule loading.
		},
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, content, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: Starlark execution error: %w", path, err)
	}
	globals.Freeze()

	name, ok := stringGlobal(globals, "name")
	if !ok || name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".star")
	}
	description, _ := stringGlobal(globals, "description")

	check, ok := globals["check"].(*starlark.Function)
	if !ok {
		return nil, fmt.Errorf("%s: custom rule must define check(ctx)", path)
	}

	fixable := false
	if v, ok := globals["fixable"].(starlark.Bool); ok {
		fixable = bool(v)
	}

	return &ScriptRule{
		BaseRule: NewBaseRule(Metadata{
			Name:          name,
			Description:   description,
			Category:      CategoryFunctionality,
			HasFix:        fixable,
			OptionsSchema: &Schema{Type: "array"},
		}),
		Path:   path,
		Digest: hex.EncodeToString(sum[:]),
		check:  check,
	}, nil
}

func stringGlobal(globals starlark.StringDict, key string) (string, bool) {
	v, ok := globals[key]
	if !ok {
		return "", false
	}
	return starlark.AsString(v)
}

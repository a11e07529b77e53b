package lint

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"

	"github.com/yaklabco/gotslint/pkg/config"
)

// ConfiguredRule is a rule bound to its resolved configuration.
type ConfiguredRule struct {
	Rule Rule

	// Name is the canonical rule name.
	Name string

	Severity config.Severity

	// Args are the raw positional arguments.
	Args []any

	// Options is the decoded options value passed to WalkContext.
	Options any

	// AutoFix reports whether the rule's fixes are applied when fixing.
	AutoFix bool
}

// NewConfiguredRule binds rule to args with error severity, decoding its
// options the way the loader does.
func NewConfiguredRule(rule Rule, args ...any) (*ConfiguredRule, error) {
	meta := rule.Metadata()
	opts, problems := NewOptionsDecoder().Decode(rule, args)
	if len(problems) > 0 {
		ce := &ConfigError{}
		for _, p := range problems {
			ce.addf("rule %q: %s", meta.Name, p)
		}
		return nil, ce
	}
	return &ConfiguredRule{
		Rule:     rule,
		Name:     meta.Name,
		Severity: config.SeverityError,
		Args:     args,
		Options:  opts,
		AutoFix:  meta.HasFix,
	}, nil
}

// RuleSet holds the rules for each dialect family.
type RuleSet struct {
	TypeScript []*ConfiguredRule
	JavaScript []*ConfiguredRule
}

// For returns the rules for a file.
func (s *RuleSet) For(javascript bool) []*ConfiguredRule {
	if javascript {
		return s.JavaScript
	}
	return s.TypeScript
}

// Loader turns a configuration into configured rules.
//
// Custom rules loaded from rules directories are cached per directory for
// the lifetime of the Loader.
type Loader struct {
	Registry *Registry

	// RulesDirectories are searched in addition to the configuration's
	// rulesDirectory entries.
	RulesDirectories []string

	decoder *OptionsDecoder
	scripts map[string]map[string]*ScriptRule
}

// NewLoader creates a loader over registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{Registry: registry}
}

// Load resolves the configuration's TypeScript rules.
func (l *Loader) Load(cfg *config.Config) ([]*ConfiguredRule, error) {
	set, err := l.LoadSet(cfg)
	if err != nil {
		return nil, err
	}
	return set.TypeScript, nil
}

// LoadSet resolves the rules for TypeScript and JavaScript files. Without
// a jsRules section, JavaScript files get the TypeScript rules minus the
// TypeScript-only ones.
//
// All problems across both sections are returned together as one
// *ConfigError.
func (l *Loader) LoadSet(cfg *config.Config) (*RuleSet, error) {
	ce := &ConfigError{Source: cfg.Source}
	scripts := l.loadScripts(cfg, ce)

	set := &RuleSet{}
	set.TypeScript = l.loadRules(cfg, cfg.Rules, scripts, false, ce)
	if cfg.JSRules != nil {
		set.JavaScript = l.loadRules(cfg, cfg.JSRules, scripts, true, ce)
	} else {
		for _, cr := range set.TypeScript {
			if !cr.Rule.Metadata().TypeScriptOnly {
				set.JavaScript = append(set.JavaScript, cr)
			}
		}
	}

	if !ce.Empty() {
		slices.Sort(ce.UnknownRules)
		ce.UnknownRules = slices.Compact(ce.UnknownRules)
		return nil, ce
	}
	return set, nil
}

func (l *Loader) loadRules(
	cfg *config.Config,
	entries map[string]config.RuleConfig,
	scripts map[string]*ScriptRule,
	javascript bool,
	ce *ConfigError,
) []*ConfiguredRule {
	if l.decoder == nil {
		l.decoder = NewOptionsDecoder()
	}

	entries = applyCLIRules(cfg, entries)

	var out []*ConfiguredRule
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		entry := entries[name]

		if !entry.IsEnabled() {
			continue
		}
		canonical, rule, ok := l.resolve(name, scripts)
		if !ok {
			ce.UnknownRules = append(ce.UnknownRules, name)
			continue
		}

		meta := rule.Metadata()
		if javascript && meta.TypeScriptOnly {
			continue
		}
		severity := resolveSeverity(entry, meta, cfg)
		if severity == config.SeverityOff {
			continue
		}

		opts, problems := l.decoder.Decode(rule, entry.Args)
		for _, p := range problems {
			ce.addf("rule %q: %s", name, p)
		}
		if len(problems) > 0 {
			continue
		}

		out = append(out, &ConfiguredRule{
			Rule:     rule,
			Name:     canonical,
			Severity: severity,
			Args:     entry.Args,
			Options:  opts,
			AutoFix:  meta.HasFix && fixAllowed(cfg, canonical),
		})
	}

	slices.SortStableFunc(out, func(a, b *ConfiguredRule) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func (l *Loader) resolve(name string, scripts map[string]*ScriptRule) (string, Rule, bool) {
	if l.Registry != nil {
		if canonical, rule, ok := l.Registry.Resolve(name); ok {
			return canonical, rule, true
		}
	}
	if rule, ok := scripts[name]; ok {
		return name, rule, true
	}
	return "", nil, false
}

// loadScripts loads custom rules from every rules directory, in order.
// A name defined in an earlier directory wins.
func (l *Loader) loadScripts(cfg *config.Config, ce *ConfigError) map[string]*ScriptRule {
	dirs := slices.Clone(l.RulesDirectories)
	base := ""
	if cfg.Source != "" {
		base = filepath.Dir(cfg.Source)
	}
	for _, dir := range cfg.RulesDirectory {
		if !filepath.IsAbs(dir) && base != "" {
			dir = filepath.Join(base, dir)
		}
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return nil
	}

	if l.scripts == nil {
		l.scripts = make(map[string]map[string]*ScriptRule)
	}

	merged := make(map[string]*ScriptRule)
	for _, dir := range dirs {
		rules, ok := l.scripts[dir]
		if !ok {
			var problems []string
			rules, problems = loadScriptRules(dir)
			ce.Problems = append(ce.Problems, problems...)
			if len(problems) == 0 {
				l.scripts[dir] = rules
			}
		}
		for name, rule := range rules {
			if _, exists := merged[name]; !exists {
				merged[name] = rule
			}
		}
	}
	return merged
}

// applyCLIRules overlays --enable and --disable on the rule entries.
func applyCLIRules(cfg *config.Config, entries map[string]config.RuleConfig) map[string]config.RuleConfig {
	if len(cfg.EnableRules) == 0 && len(cfg.DisableRules) == 0 {
		return entries
	}
	out := maps.Clone(entries)
	if out == nil {
		out = make(map[string]config.RuleConfig)
	}
	for _, name := range cfg.EnableRules {
		entry, ok := out[name]
		if !ok {
			out[name] = config.Enabled()
			continue
		}
		on := true
		entry.Enabled = &on
		if entry.Severity == config.SeverityOff {
			entry.Severity = ""
		}
		out[name] = entry
	}
	for _, name := range cfg.DisableRules {
		entry := out[name]
		off := false
		entry.Enabled = &off
		out[name] = entry
	}
	return out
}

func resolveSeverity(entry config.RuleConfig, meta Metadata, cfg *config.Config) config.Severity {
	switch {
	case entry.Severity != "":
		return entry.Severity
	case meta.DefaultSeverity != "":
		return meta.DefaultSeverity
	case cfg.DefaultSeverity != "":
		return cfg.DefaultSeverity
	default:
		return config.SeverityError
	}
}

func fixAllowed(cfg *config.Config, name string) bool {
	return len(cfg.FixRules) == 0 || slices.Contains(cfg.FixRules, name)
}

package lint

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/fsutil"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// cacheFormat is bumped whenever the entry encoding changes.
const cacheFormat = 1

// Cache stores lint failures keyed by file content and configuration.
//
// A Cache is owned by one run; it holds no in-memory state beyond its
// key material and is safe for concurrent use.
type Cache struct {
	// Dir is the cache directory.
	Dir string

	fingerprint string
}

type cacheEntry struct {
	Format   int             `msgpack:"v"`
	Failures []cachedFailure `msgpack:"f"`
}

type cachedFailure struct {
	Rule     string            `msgpack:"r"`
	Severity string            `msgpack:"s"`
	Message  string            `msgpack:"m"`
	Start    int               `msgpack:"a"`
	End      int               `msgpack:"b"`
	Fix      []fix.Replacement `msgpack:"x,omitempty"`
}

// NewCache creates a cache under dir whose keys cover the rule set and
// the engine version, so changing either invalidates every entry.
func NewCache(dir string, rules *RuleSet, engineVersion string) (*Cache, error) {
	fp, err := fingerprint(rules, engineVersion)
	if err != nil {
		return nil, err
	}
	return &Cache{Dir: dir, fingerprint: fp}, nil
}

// SourceDigester is implemented by rules whose behavior is defined by
// source loaded at run time. The digest is part of the cache key, so
// editing the source invalidates cached results.
type SourceDigester interface {
	SourceDigest() string
}

type ruleKey struct {
	Name     string `msgpack:"n"`
	Severity string `msgpack:"s"`
	Args     []any  `msgpack:"a"`
	AutoFix  bool   `msgpack:"f"`
	Source   string `msgpack:"h,omitempty"`
}

func newRuleKey(cr *ConfiguredRule) ruleKey {
	key := ruleKey{Name: cr.Name, Severity: string(cr.Severity), Args: cr.Args, AutoFix: cr.AutoFix}
	if d, ok := cr.Rule.(SourceDigester); ok {
		key.Source = d.SourceDigest()
	}
	return key
}

func fingerprint(rules *RuleSet, engineVersion string) (string, error) {
	var set struct {
		Version string    `msgpack:"v"`
		TS      []ruleKey `msgpack:"t"`
		JS      []ruleKey `msgpack:"j"`
	}
	set.Version = engineVersion
	if rules != nil {
		for _, cr := range rules.TypeScript {
			set.TS = append(set.TS, newRuleKey(cr))
		}
		for _, cr := range rules.JavaScript {
			set.JS = append(set.JS, newRuleKey(cr))
		}
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&set); err != nil {
		return "", fmt.Errorf("fingerprint rules: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// Key computes the cache key of one file.
func (c *Cache) Key(path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(c.fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached failures for path and content. Positions are
// resolved against content. A missing or unreadable entry is a miss.
func (c *Cache) Get(path string, content []byte) ([]*RuleFailure, bool) {
	data, err := os.ReadFile(c.path(c.Key(path, content)))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, false
	}
	if entry.Format != cacheFormat {
		return nil, false
	}

	lines := tsast.NewLineMap(content)
	failures := make([]*RuleFailure, 0, len(entry.Failures))
	for _, cf := range entry.Failures {
		if cf.Start < 0 || cf.End < cf.Start || cf.End > len(content) {
			return nil, false
		}
		failures = append(failures, &RuleFailure{
			RuleName: cf.Rule,
			Severity: config.Severity(cf.Severity),
			Path:     path,
			Message:  cf.Message,
			Range:    tsast.TextRange{Pos: cf.Start, End: cf.End},
			Start:    lines.LineAndCharacterOf(cf.Start),
			End:      lines.LineAndCharacterOf(cf.End),
			Fix:      cf.Fix,
		})
	}
	return failures, true
}

// Put stores the failures of a clean lint result. Results with rule
// errors are not cached.
func (c *Cache) Put(ctx context.Context, path string, content []byte, res *Result) error {
	if len(res.RuleErrors) > 0 {
		return nil
	}

	entry := cacheEntry{Format: cacheFormat}
	for _, f := range res.Failures {
		entry.Failures = append(entry.Failures, cachedFailure{
			Rule:     f.RuleName,
			Severity: string(f.Severity),
			Message:  f.Message,
			Start:    f.Range.Pos,
			End:      f.Range.End,
			Fix:      f.Fix,
		})
	}

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&entry); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	target := c.path(c.Key(path, content))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := fsutil.WriteFile(ctx, target, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes the cache directory.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.Dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// path uses a two-character prefix directory to avoid huge flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key[:2], key+".msgpack")
}

package configloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/yaklabco/gotslint/pkg/config"
)

// EnvPrefix is the prefix for all gotslint environment variables.
const EnvPrefix = "GOTSLINT_"

// envOverlay holds the settings environment variables may carry. Pointer
// fields stay nil when the variable is unset.
type envOverlay struct {
	Fix             *bool   `koanf:"fix"`
	DryRun          *bool   `koanf:"dry_run"`
	Format          *string `koanf:"format"`
	Jobs            *int    `koanf:"jobs"`
	MaxFixPasses    *int    `koanf:"max_fix_passes"`
	NoBackups       *bool   `koanf:"no_backups"`
	Cache           *bool   `koanf:"cache"`
	CacheDir        *string `koanf:"cache_dir"`
	DefaultSeverity *string `koanf:"default_severity"`

	// Exclude is a comma-separated list of globs added to
	// linterOptions.exclude.
	Exclude *string `koanf:"exclude"`

	Backups struct {
		Enabled *bool   `koanf:"enabled"`
		Mode    *string `koanf:"mode"`
	} `koanf:"backups"`
}

// envKey maps GOTSLINT_BACKUPS_MODE to "backups.mode" and
// GOTSLINT_DRY_RUN to "dry_run".
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "backups_"); ok {
		return "backups." + rest
	}
	return key
}

// LoadFromEnv applies GOTSLINT_* environment variables to cfg.
// Values that do not parse are reported together.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	var overlay envOverlay
	if err := k.Unmarshal("", &overlay); err != nil {
		return fmt.Errorf("decode %s* variables: %w", EnvPrefix, err)
	}

	return overlay.apply(cfg)
}

func (o *envOverlay) apply(cfg *config.Config) error {
	setIf(&cfg.Fix, o.Fix)
	setIf(&cfg.DryRun, o.DryRun)
	setIf(&cfg.Jobs, o.Jobs)
	setIf(&cfg.MaxFixPasses, o.MaxFixPasses)
	setIf(&cfg.NoBackups, o.NoBackups)
	setIf(&cfg.Cache, o.Cache)
	setIf(&cfg.CacheDir, o.CacheDir)
	setIf(&cfg.Backups.Enabled, o.Backups.Enabled)
	setIf(&cfg.Backups.Mode, o.Backups.Mode)

	if o.Format != nil {
		cfg.Format = config.OutputFormat(strings.ToLower(*o.Format))
	}
	if o.DefaultSeverity != nil {
		sev, err := config.ParseSeverity(*o.DefaultSeverity, cfg.DefaultSeverity)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_SEVERITY: %w", EnvPrefix, err)
		}
		cfg.DefaultSeverity = sev
	}
	if o.Exclude != nil {
		for _, pattern := range strings.Split(*o.Exclude, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				cfg.LinterOptions.Exclude = append(cfg.LinterOptions.Exclude, pattern)
			}
		}
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

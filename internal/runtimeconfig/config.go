package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/pages"
)

var (
	ErrDefaultLocaleUnknown         = errors.New("runtimeconfig: default locale missing from locale set")
	ErrStorageDriverUnknown         = errors.New("runtimeconfig: unknown storage driver")
	ErrStorageDSNRequired           = errors.New("runtimeconfig: storage dsn required")
	ErrRetentionInvalid             = errors.New("runtimeconfig: revision retention must be positive")
	ErrTranslatorKeyWithoutEndpoint = errors.New("runtimeconfig: translator api key set without endpoint")
)

// Storage drivers accepted by Config.Storage.Driver. The memory driver keeps
// everything in process and needs no DSN.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Config is the top level runtime configuration for the sitekit module.
type Config struct {
	DefaultLocale string
	I18N          I18NConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Pages         PagesConfig
	Translator    TranslatorConfig
	Theme         ThemeConfig
	Logging       LoggingConfig
}

// I18NConfig fixes the locale set content is authored in.
type I18NConfig struct {
	Locales []string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig toggles the read-through repository cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// PagesConfig captures page service behaviour.
type PagesConfig struct {
	RevisionRetention int
	ReservedSlugs     []string
}

// TranslatorConfig points at the machine-translation endpoint. An empty
// endpoint disables translation; TranslateBlock then reports every target as
// failed rather than erroring the whole operation.
type TranslatorConfig struct {
	Endpoint     string
	APIKey       string
	SourceLocale string
}

// ThemeConfig names the palette applied when rendering. Path points at a
// go-theme manifest directory; an empty name keeps the built-in palette.
type ThemeConfig struct {
	Name    string
	Variant string
	Path    string
}

// LoggingConfig configures the go-logger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns defaults suitable for an in-process deployment: the
// built-in locale set, memory storage, caching on, and no translator.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: i18n.DefaultLocale,
		I18N: I18NConfig{
			Locales: i18n.DefaultLocales(),
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Pages: PagesConfig{
			RevisionRetention: pages.DefaultRevisionRetention,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate rejects configurations the container cannot wire.
func (c Config) Validate() error {
	locales := i18n.NormalizeLocales(c.I18N.Locales)
	if len(locales) > 0 && !i18n.ContainsLocale(locales, i18n.NormalizeLocale(c.DefaultLocale)) {
		return ErrDefaultLocaleUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", StorageDriverMemory:
	case StorageDriverSQLite, StorageDriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return ErrStorageDriverUnknown
	}

	if c.Pages.RevisionRetention < 0 {
		return ErrRetentionInvalid
	}

	if c.Translator.APIKey != "" && strings.TrimSpace(c.Translator.Endpoint) == "" {
		return ErrTranslatorKeyWithoutEndpoint
	}

	return nil
}

package sitekit

import "github.com/goliatone/go-sitekit/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnknown         = runtimeconfig.ErrDefaultLocaleUnknown
	ErrStorageDriverUnknown         = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired           = runtimeconfig.ErrStorageDSNRequired
	ErrRetentionInvalid             = runtimeconfig.ErrRetentionInvalid
	ErrTranslatorKeyWithoutEndpoint = runtimeconfig.ErrTranslatorKeyWithoutEndpoint
)

type (
	Config           = runtimeconfig.Config
	I18NConfig       = runtimeconfig.I18NConfig
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	PagesConfig      = runtimeconfig.PagesConfig
	TranslatorConfig = runtimeconfig.TranslatorConfig
	ThemeConfig      = runtimeconfig.ThemeConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// Storage drivers accepted by Config.Storage.Driver.
const (
	StorageDriverMemory   = runtimeconfig.StorageDriverMemory
	StorageDriverSQLite   = runtimeconfig.StorageDriverSQLite
	StorageDriverPostgres = runtimeconfig.StorageDriverPostgres
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

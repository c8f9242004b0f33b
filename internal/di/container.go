package di

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	gotheme "github.com/goliatone/go-theme"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/editor"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/logging/gologger"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/render"
	"github.com/goliatone/go-sitekit/internal/runtimeconfig"
	"github.com/goliatone/go-sitekit/internal/storage"
	"github.com/goliatone/go-sitekit/internal/translate"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Container wires module dependencies from a validated runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider   interfaces.LoggerProvider
	authorizer       interfaces.Authorizer
	translator       interfaces.Translator
	identityResolver interfaces.IdentityResolver
	mediaStorage     interfaces.MediaStorage

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo   pages.Repository
	draftCache editor.DraftCache

	pageSvc      pages.Service
	translateSvc *translate.Service
	registry     *blocks.Registry
	palette      render.Palette
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an externally managed database connection. The container
// will not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithPageRepository overrides the page repository binding.
func WithPageRepository(repo pages.Repository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithPageService overrides the page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithTranslator overrides the machine-translation client.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

// WithAuthorizer gates mutating page operations.
func WithAuthorizer(authorizer interfaces.Authorizer) Option {
	return func(c *Container) {
		c.authorizer = authorizer
	}
}

// WithIdentityResolver supplies the collaborator that authenticates the
// acting user; resolved ids are stamped on revisions.
func WithIdentityResolver(resolver interfaces.IdentityResolver) Option {
	return func(c *Container) {
		c.identityResolver = resolver
	}
}

// WithMediaStorage supplies the external upload collaborator. Blocks only
// ever store the URLs it returns.
func WithMediaStorage(storage interfaces.MediaStorage) Option {
	return func(c *Container) {
		c.mediaStorage = storage
	}
}

// WithDraftCache supplies the local draft cache handed to editor sessions.
func WithDraftCache(cache editor.DraftCache) Option {
	return func(c *Container) {
		c.draftCache = cache
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:     cfg,
		cacheTTL:   cacheTTL,
		draftCache: editor.NewMemoryDraftCache(),
		registry:   blocks.NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.bunDB == nil {
		db, err := storage.OpenDB(cfg.Storage)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
		c.ownsDB = db != nil
	}

	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	if err := c.configurePalette(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.pageRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.pageRepo = pages.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.pageRepo = pages.NewMemoryRepository()
}

func (c *Container) configureServices() {
	locales := i18n.NormalizeLocales(c.Config.I18N.Locales)
	if len(locales) == 0 {
		locales = i18n.DefaultLocales()
	}

	if c.pageSvc == nil {
		pageOpts := []pages.ServiceOption{
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		}
		if c.Config.Pages.RevisionRetention > 0 {
			pageOpts = append(pageOpts, pages.WithRevisionRetention(c.Config.Pages.RevisionRetention))
		}
		if len(c.Config.Pages.ReservedSlugs) > 0 {
			pageOpts = append(pageOpts, pages.WithReservedSlugs(c.Config.Pages.ReservedSlugs...))
		}
		if c.authorizer != nil {
			pageOpts = append(pageOpts, pages.WithAuthorizer(c.authorizer))
		}
		c.pageSvc = pages.NewService(c.pageRepo, pageOpts...)
	}

	if c.translator == nil && c.Config.Translator.Endpoint != "" {
		translatorOpts := []translate.HTTPTranslatorOption{}
		if key := c.Config.Translator.APIKey; key != "" {
			translatorOpts = append(translatorOpts, translate.WithAPIKey(key))
		}
		c.translator = translate.NewHTTPTranslator(c.Config.Translator.Endpoint, translatorOpts...)
	}
	if c.translator != nil {
		c.translateSvc = translate.NewService(
			c.translator,
			translate.WithLocales(locales),
			translate.WithLogger(logging.TranslateLogger(c.loggerProvider)),
		)
	}
}

func (c *Container) configurePalette() error {
	c.palette = render.DefaultPalette()
	themeCfg := c.Config.Theme
	if themeCfg.Name == "" || themeCfg.Path == "" {
		return nil
	}

	manifest, err := gotheme.LoadDir(os.DirFS(filepath.Clean(themeCfg.Path)), ".")
	if err != nil {
		return fmt.Errorf("di: load theme manifest from %s: %w", themeCfg.Path, err)
	}
	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return fmt.Errorf("di: register theme manifest: %w", err)
	}

	selector := gotheme.Selector{
		Registry:     registry,
		DefaultTheme: themeCfg.Name,
	}
	selection, err := selector.Select(themeCfg.Name, themeCfg.Variant)
	if err != nil {
		return fmt.Errorf("di: select theme %s: %w", themeCfg.Name, err)
	}
	c.palette = render.PaletteFromSelection(selection)
	return nil
}

// PageService returns the configured page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// TranslateService returns the translation fan-out service, or nil when no
// translator is configured.
func (c *Container) TranslateService() *translate.Service {
	return c.translateSvc
}

// BlockRegistry returns the block definition registry.
func (c *Container) BlockRegistry() *blocks.Registry {
	return c.registry
}

// DraftCache returns the local draft cache shared by editor sessions.
func (c *Container) DraftCache() editor.DraftCache {
	return c.draftCache
}

// Palette returns the render palette resolved from the theme configuration.
func (c *Container) Palette() render.Palette {
	return c.palette
}

// Locales returns the configured locale set.
func (c *Container) Locales() []string {
	locales := i18n.NormalizeLocales(c.Config.I18N.Locales)
	if len(locales) == 0 {
		return i18n.DefaultLocales()
	}
	return locales
}

// IdentityResolver returns the identity collaborator, nil when none is
// configured.
func (c *Container) IdentityResolver() interfaces.IdentityResolver {
	return c.identityResolver
}

// MediaStorage returns the upload collaborator, nil when none is configured.
func (c *Container) MediaStorage() interfaces.MediaStorage {
	return c.mediaStorage
}

// LoggerProvider returns the logging provider services were wired with.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB returns the underlying bun database, nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Close releases the database connection when the container opened it.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

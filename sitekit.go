package sitekit

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/di"
	"github.com/goliatone/go-sitekit/internal/editor"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/render"
	"github.com/goliatone/go-sitekit/internal/translate"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// ErrNoMediaStorage is returned by UploadMedia when no media collaborator is
// configured.
var ErrNoMediaStorage = errors.New("sitekit: media storage not configured")

// PageService exports the pages service contract.
type PageService = pages.Service

// Page exports the page head record.
type Page = pages.Page

// PageRevision exports the immutable revision snapshot.
type PageRevision = pages.PageRevision

// Block exports the tagged block envelope.
type Block = blocks.Block

// BlockType exports the block type tag.
type BlockType = blocks.Type

// BlockRegistry exports the block definition registry.
type BlockRegistry = blocks.Registry

// TranslateService exports the translation fan-out service.
type TranslateService = translate.Service

// EditorSession exports the page editing session.
type EditorSession = editor.Session

// Document exports the rendered page document.
type Document = render.Document

// Palette exports the render design tokens.
type Palette = render.Palette

// Module is the top level sitekit runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a sitekit module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Blocks returns the block definition registry.
func (m *Module) Blocks() *BlockRegistry {
	return m.container.BlockRegistry()
}

// Translator returns the translation service, nil when no translator is
// configured.
func (m *Module) Translator() *TranslateService {
	return m.container.TranslateService()
}

// Palette returns the design tokens resolved from the theme configuration.
func (m *Module) Palette() Palette {
	return m.container.Palette()
}

// OpenEditor starts an editing session against a page's draft, wired with the
// module's draft cache, translator, and locale set.
func (m *Module) OpenEditor(ctx context.Context, pageID uuid.UUID, opts ...editor.SessionOption) (*EditorSession, error) {
	sessionOpts := []editor.SessionOption{
		editor.WithDraftCache(m.container.DraftCache()),
		editor.WithSessionLocales(m.container.Locales()),
	}
	if translator := m.container.TranslateService(); translator != nil {
		sessionOpts = append(sessionOpts, editor.WithTranslator(translator))
	}
	if resolver := m.container.IdentityResolver(); resolver != nil {
		actor, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		sessionOpts = append(sessionOpts, editor.WithActor(actor))
	}
	sessionOpts = append(sessionOpts, opts...)
	return editor.OpenSession(ctx, m.container.PageService(), pageID, sessionOpts...)
}

// UploadMedia stores a binary with the configured media collaborator and
// returns the asset whose URL block fields may reference.
func (m *Module) UploadMedia(ctx context.Context, name, mimeType string, body io.Reader) (interfaces.MediaAsset, error) {
	storage := m.container.MediaStorage()
	if storage == nil {
		return interfaces.MediaAsset{}, ErrNoMediaStorage
	}
	return storage.Store(ctx, name, mimeType, body)
}

// RenderPublished renders the published revision of the page at slug for a
// locale. Pages without a published revision are reported as not found.
func (m *Module) RenderPublished(ctx context.Context, slug, locale string) (Document, error) {
	_, revision, err := m.container.PageService().PublishedRevision(ctx, slug)
	if err != nil {
		return Document{}, err
	}
	return render.Render(revision.Blocks, locale, m.container.Palette()), nil
}

// RenderPreview renders a page's current draft for a locale, regardless of
// publish state.
func (m *Module) RenderPreview(ctx context.Context, pageID uuid.UUID, locale string) (Document, error) {
	revision, err := m.container.PageService().DraftRevision(ctx, pageID)
	if err != nil {
		return Document{}, err
	}
	return render.Render(revision.Blocks, locale, m.container.Palette()), nil
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

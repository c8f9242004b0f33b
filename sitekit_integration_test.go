package sitekit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	sitekit "github.com/goliatone/go-sitekit"
	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/di"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

func TestModule_AuthorPublishRenderRoundTrip(t *testing.T) {
	ctx := context.Background()

	module, err := sitekit.New(sitekit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	page, err := module.Pages().Create(ctx, pages.CreatePageRequest{Slug: "about", Title: "About"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	// Nothing published yet: the public read path reports the page missing.
	if _, err := module.RenderPublished(ctx, "about", "en"); err == nil {
		t.Fatal("unpublished page leaked through the public read path")
	}

	session, err := module.OpenEditor(ctx, page.ID)
	if err != nil {
		t.Fatalf("open editor: %v", err)
	}
	defer session.Close()

	hero, err := session.InsertBlock(ctx, blocks.TypeHero, -1)
	if err != nil {
		t.Fatalf("insert hero: %v", err)
	}
	err = session.UpdateBlock(ctx, hero.ID, func(data blocks.Data) {
		heroData := data.(*blocks.HeroData)
		heroData.Title = heroData.Title.Set("en", "Hi")
	})
	if err != nil {
		t.Fatalf("update hero: %v", err)
	}
	if _, err := session.Save(ctx); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	if _, err := module.Pages().Publish(ctx, pages.PublishPageRequest{PageID: page.ID}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	doc, err := module.RenderPublished(ctx, "about", "de")
	if err != nil {
		t.Fatalf("render published: %v", err)
	}
	if !strings.Contains(doc.HTML(), ">Hi</h1>") {
		t.Fatalf("expected english fallback in german render: %q", doc.HTML())
	}
	if !strings.Contains(doc.Styles, "--sk-accent:") {
		t.Fatalf("expected palette styles: %q", doc.Styles)
	}
}

func TestModule_DraftsStayPrivateUntilPublish(t *testing.T) {
	ctx := context.Background()

	module, err := sitekit.New(sitekit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	page, err := module.Pages().Create(ctx, pages.CreatePageRequest{Slug: "services", Title: "Services"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	// The preview path sees the draft; the public path does not.
	if _, err := module.RenderPreview(ctx, page.ID, "en"); err != nil {
		t.Fatalf("render preview: %v", err)
	}
	var notFound *pages.PageNotFoundError
	if _, err := module.RenderPublished(ctx, "services", "en"); !errors.As(err, &notFound) {
		t.Fatalf("expected not found for unpublished page, got %v", err)
	}
}

func TestModule_WithBunStorage(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	for _, model := range []any{(*pages.Page)(nil), (*pages.PageRevision)(nil)} {
		if _, err := bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}

	cfg := sitekit.DefaultConfig()
	cfg.Cache.DefaultTTL = 50 * time.Millisecond

	module, err := sitekit.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	page, err := module.Pages().Create(ctx, pages.CreatePageRequest{Slug: "portfolio", Title: "Portfolio"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := module.Pages().Publish(ctx, pages.PublishPageRequest{PageID: page.ID}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	doc, err := module.RenderPublished(ctx, "portfolio", "en")
	if err != nil {
		t.Fatalf("render published: %v", err)
	}
	if doc.Locale != "en" {
		t.Fatalf("unexpected document locale %q", doc.Locale)
	}
}

func TestModule_RejectsInvalidConfig(t *testing.T) {
	cfg := sitekit.DefaultConfig()
	cfg.Storage.Driver = "mongodb"

	if _, err := sitekit.New(cfg); !errors.Is(err, sitekit.ErrStorageDriverUnknown) {
		t.Fatalf("expected storage driver rejection, got %v", err)
	}
}

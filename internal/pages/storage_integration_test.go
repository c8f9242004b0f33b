package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	registerPageModels(t, bunDB)
	return bunDB
}

func registerPageModels(t *testing.T, db *bun.DB) {
	t.Helper()

	ctx := context.Background()
	models := []any{
		(*pages.Page)(nil),
		(*pages.PageRevision)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
}

func TestPageRepository_WithBunAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := pages.NewBunRepositoryWithCache(bunDB, cacheSvc, keySerializer)
	svc := pages.NewService(repo)

	page, err := svc.Create(ctx, pages.CreatePageRequest{Slug: "about", Title: "About"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if page.DraftRevisionID == nil {
		t.Fatal("new page missing draft revision")
	}

	factory := blocks.NewFactory(i18n.DefaultLocales())
	hero := factory.New(blocks.TypeHero)
	hero.Data.(*blocks.HeroData).Title = i18n.LocalizedString{"en": "Hi"}

	revision, err := svc.Save(ctx, pages.SavePageRequest{
		PageID: page.ID,
		Title:  "About",
		Blocks: []blocks.Block{hero},
	})
	if err != nil {
		t.Fatalf("save page: %v", err)
	}
	if len(revision.Blocks) != 1 || revision.Blocks[0].Type != blocks.TypeHero {
		t.Fatalf("revision blocks did not round trip: %+v", revision.Blocks)
	}

	if _, err := svc.Publish(ctx, pages.PublishPageRequest{PageID: page.ID}); err != nil {
		t.Fatalf("publish page: %v", err)
	}

	fetched, published, err := svc.PublishedRevision(ctx, "about")
	if err != nil {
		t.Fatalf("published revision: %v", err)
	}
	if fetched.Slug != "about" || published.ID != revision.ID {
		t.Fatalf("unexpected published head: page=%s revision=%s", fetched.Slug, published.ID)
	}
	title := published.Blocks[0].Data.(*blocks.HeroData).Title.Get("en")
	if title != "Hi" {
		t.Fatalf("block payload lost in storage: %q", title)
	}

	// Second read exercises the cache path.
	if _, _, err := svc.PublishedRevision(ctx, "about"); err != nil {
		t.Fatalf("cached published revision: %v", err)
	}

	history, err := svc.ListRevisions(ctx, page.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 revisions got %d", len(history))
	}

	if _, err := svc.Create(ctx, pages.CreatePageRequest{Slug: "about", Title: "Dup"}); !errors.Is(err, pages.ErrSlugExists) {
		t.Fatalf("expected slug conflict got %v", err)
	}

	if err := svc.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	var notFound *pages.PageNotFoundError
	if _, err := svc.Get(ctx, page.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected not found after delete got %v", err)
	}
}

func TestPageRepository_RevertThroughBun(t *testing.T) {
	ctx := context.Background()
	repo := pages.NewBunRepository(newBunDB(t))
	svc := pages.NewService(repo)

	page, err := svc.Create(ctx, pages.CreatePageRequest{Slug: "services", Title: "Services"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	factory := blocks.NewFactory(i18n.DefaultLocales())
	first := factory.New(blocks.TypeRichText)
	first.Data.(*blocks.RichTextData).Content = i18n.LocalizedHTML{"en": "<p>v1</p>"}
	keep, err := svc.Save(ctx, pages.SavePageRequest{PageID: page.ID, Title: "Services", Blocks: []blocks.Block{first}})
	if err != nil {
		t.Fatalf("save v1: %v", err)
	}

	second := factory.New(blocks.TypeRichText)
	second.Data.(*blocks.RichTextData).Content = i18n.LocalizedHTML{"en": "<p>v2</p>"}
	if _, err := svc.Save(ctx, pages.SavePageRequest{PageID: page.ID, Title: "Services", Blocks: []blocks.Block{second}}); err != nil {
		t.Fatalf("save v2: %v", err)
	}

	restored, err := svc.Revert(ctx, pages.RevertPageRequest{PageID: page.ID, RevisionID: keep.ID})
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if restored.ID == keep.ID {
		t.Fatal("revert must mint a new revision")
	}
	content := restored.Blocks[0].Data.(*blocks.RichTextData).Content.Get("en")
	if content != "<p>v1</p>" {
		t.Fatalf("revert restored wrong content: %q", content)
	}
}

func TestPageRepository_FailedHeadMoveRollsBackRevision(t *testing.T) {
	ctx := context.Background()
	repo := pages.NewBunRepository(newBunDB(t))

	now := time.Now().UTC()
	ghost := &pages.Page{ID: uuid.New(), Slug: "ghost", Title: "Ghost", CreatedAt: now, UpdatedAt: now}
	revision := &pages.PageRevision{ID: uuid.New(), PageID: ghost.ID, Title: "Ghost", Blocks: []blocks.Block{}, CreatedAt: now}

	var notFound *pages.PageNotFoundError
	if _, err := repo.UpdateWithRevision(ctx, ghost, revision); !errors.As(err, &notFound) {
		t.Fatalf("expected page not found got %v", err)
	}

	var missing *pages.RevisionNotFoundError
	if _, err := repo.GetRevision(ctx, ghost.ID, revision.ID); !errors.As(err, &missing) {
		t.Fatalf("expected revision insert to roll back, got %v", err)
	}
}

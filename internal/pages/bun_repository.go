package pages

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db        *bun.DB
	pages     repository.Repository[*Page]
	revisions repository.Repository[*PageRevision]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:        db,
		pages:     wrapWithCache(NewPageModelRepository(db), cacheService, keySerializer),
		revisions: wrapWithCache(NewRevisionModelRepository(db), cacheService, keySerializer),
	}
}

func (r *BunRepository) CreateWithRevision(ctx context.Context, record *Page, revision *PageRevision) (*Page, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return &SlugConflictError{Slug: record.Slug}
			}
			return fmt.Errorf("insert page: %w", err)
		}
		if revision != nil {
			if _, err := tx.NewInsert().Model(revision).Exec(ctx); err != nil {
				return fmt.Errorf("insert page revision: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.pages.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return result, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	result, err := r.pages.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug)
	}
	return result, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.pages.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("slug ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "page", "")
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.pages.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"title",
			"draft_revision_id",
			"published_revision_id",
			"updated_by",
			"updated_at",
		),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &SlugConflictError{Slug: record.Slug}
		}
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	return updated, nil
}

// UpdateWithRevision inserts the revision and repoints the page head in one
// transaction, so a failure on either statement rolls back both.
func (r *BunRepository) UpdateWithRevision(ctx context.Context, record *Page, revision *PageRevision) (*PageRevision, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(revision).Exec(ctx); err != nil {
			return fmt.Errorf("insert page revision: %w", err)
		}

		result, err := tx.NewUpdate().
			Model(record).
			Column(
				"slug",
				"title",
				"draft_revision_id",
				"published_revision_id",
				"updated_by",
				"updated_at",
			).
			WherePK().
			Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return &SlugConflictError{Slug: record.Slug}
			}
			return fmt.Errorf("update page: %w", err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return &PageNotFoundError{Key: record.ID.String()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revision, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PageRevision)(nil)).
			Where("?TableAlias.page_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page revisions: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return &PageNotFoundError{Key: id.String()}
		}
		return nil
	})
}

func (r *BunRepository) GetRevision(ctx context.Context, pageID, revisionID uuid.UUID) (*PageRevision, error) {
	records, _, err := r.revisions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", revisionID).
				Where("?TableAlias.page_id = ?", pageID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page revision", revisionID.String())
	}
	if len(records) == 0 {
		return nil, &RevisionNotFoundError{PageID: pageID, RevisionID: revisionID}
	}
	return records[0], nil
}

func (r *BunRepository) ListRevisions(ctx context.Context, pageID uuid.UUID) ([]*PageRevision, error) {
	records, _, err := r.revisions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Order("created_at DESC", "id DESC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page revision", pageID.String())
	}
	return records, nil
}

func (r *BunRepository) DeleteRevisions(ctx context.Context, pageID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	_, err := r.db.NewDelete().
		Model((*PageRevision)(nil)).
		Where("?TableAlias.page_id = ?", pageID).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete page revisions: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		if resource == "page revision" {
			revisionID, _ := uuid.Parse(key)
			return &RevisionNotFoundError{RevisionID: revisionID}
		}
		return &PageNotFoundError{
			Key: key,
		}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key") ||
		strings.Contains(message, "unique violation")
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

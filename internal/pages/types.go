package pages

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitekit/internal/blocks"
)

// Page is the mutable head record of a document. Content never lives here;
// it lives in immutable revisions the two pointers below select from.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:pg" json:"-"`

	ID                  uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Slug                string     `bun:"slug,notnull,unique" json:"slug"`
	Title               string     `bun:"title,notnull" json:"title"`
	DraftRevisionID     *uuid.UUID `bun:"draft_revision_id,type:uuid,nullzero" json:"draft_revision_id,omitempty"`
	PublishedRevisionID *uuid.UUID `bun:"published_revision_id,type:uuid,nullzero" json:"published_revision_id,omitempty"`
	CreatedBy           uuid.UUID  `bun:"created_by,type:uuid,nullzero" json:"created_by,omitempty"`
	UpdatedBy           uuid.UUID  `bun:"updated_by,type:uuid,nullzero" json:"updated_by,omitempty"`
	CreatedAt           time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt           time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}

// IsPublished reports whether the page has a live revision.
func (p *Page) IsPublished() bool {
	return p != nil && p.PublishedRevisionID != nil
}

// HasUnpublishedChanges reports whether the draft pointer is ahead of the
// published one.
func (p *Page) HasUnpublishedChanges() bool {
	if p == nil || p.DraftRevisionID == nil {
		return false
	}
	if p.PublishedRevisionID == nil {
		return true
	}
	return *p.DraftRevisionID != *p.PublishedRevisionID
}

// PageRevision is an immutable snapshot of a page's title and block list.
// Rows are only ever inserted and deleted, never updated.
type PageRevision struct {
	bun.BaseModel `bun:"table:page_revisions,alias:pr" json:"-"`

	ID        uuid.UUID      `bun:"id,pk,type:uuid" json:"id"`
	PageID    uuid.UUID      `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Title     string         `bun:"title,notnull" json:"title"`
	Blocks    []blocks.Block `bun:"blocks,type:jsonb" json:"blocks"`
	CreatedBy uuid.UUID      `bun:"created_by,type:uuid,nullzero" json:"created_by,omitempty"`
	CreatedAt time.Time      `bun:"created_at,notnull" json:"created_at"`
}

// CreatePageRequest carries the fields for a new page. The page starts with
// an empty draft revision and no published revision.
type CreatePageRequest struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	CreatedBy uuid.UUID `json:"created_by,omitempty"`
}

// SavePageRequest snapshots the editor's working state into a new draft
// revision. RawBlocks is the untrusted JSON payload from the client; when
// the caller already holds typed blocks it can pass Blocks instead.
type SavePageRequest struct {
	PageID    uuid.UUID       `json:"page_id"`
	Title     string          `json:"title"`
	RawBlocks json.RawMessage `json:"raw_blocks,omitempty"`
	Blocks    []blocks.Block  `json:"blocks,omitempty"`
	SavedBy   uuid.UUID       `json:"saved_by,omitempty"`
}

// PublishPageRequest promotes the current draft revision to published.
type PublishPageRequest struct {
	PageID      uuid.UUID `json:"page_id"`
	PublishedBy uuid.UUID `json:"published_by,omitempty"`
}

// RevertPageRequest copies a historical revision into a new draft head.
type RevertPageRequest struct {
	PageID     uuid.UUID `json:"page_id"`
	RevisionID uuid.UUID `json:"revision_id"`
	RevertedBy uuid.UUID `json:"reverted_by,omitempty"`
}

// Repository is the storage boundary for pages and their revisions.
// Implementations must treat CreateWithRevision as a single atomic unit and
// keep ListRevisions ordered newest first.
type Repository interface {
	CreateWithRevision(ctx context.Context, page *Page, revision *PageRevision) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	UpdateWithRevision(ctx context.Context, page *Page, revision *PageRevision) (*PageRevision, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetRevision(ctx context.Context, pageID, revisionID uuid.UUID) (*PageRevision, error)
	ListRevisions(ctx context.Context, pageID uuid.UUID) ([]*PageRevision, error)
	DeleteRevisions(ctx context.Context, pageID uuid.UUID, ids []uuid.UUID) error
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	out := *page
	out.DraftRevisionID = cloneUUIDPtr(page.DraftRevisionID)
	out.PublishedRevisionID = cloneUUIDPtr(page.PublishedRevisionID)
	return &out
}

func cloneRevision(revision *PageRevision) *PageRevision {
	if revision == nil {
		return nil
	}
	out := *revision
	out.Blocks = blocks.CloneBlocks(revision.Blocks)
	return &out
}

func cloneUUIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}

package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/sanitize"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// DefaultRevisionRetention is how many recent revisions survive pruning,
// in addition to the published one.
const DefaultRevisionRetention = 10

// Service exposes the page lifecycle: create, save drafts, publish, revert,
// inspect history. Every save produces a new immutable revision; the page
// record only moves its draft/published pointers.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Save(ctx context.Context, req SavePageRequest) (*PageRevision, error)
	Publish(ctx context.Context, req PublishPageRequest) (*Page, error)
	Revert(ctx context.Context, req RevertPageRequest) (*PageRevision, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListRevisions(ctx context.Context, pageID uuid.UUID) ([]*PageRevision, error)
	GetRevision(ctx context.Context, pageID, revisionID uuid.UUID) (*PageRevision, error)
	DraftRevision(ctx context.Context, pageID uuid.UUID) (*PageRevision, error)
	PublishedRevision(ctx context.Context, slug string) (*Page, *PageRevision, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithRevisionRetention constrains how many non-published revisions survive
// a save. Zero keeps only the published revision.
func WithRevisionRetention(limit int) ServiceOption {
	return func(s *service) {
		if limit < 0 {
			limit = 0
		}
		s.retention = limit
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuthorizer gates mutating operations behind an access check.
func WithAuthorizer(authorizer interfaces.Authorizer) ServiceOption {
	return func(s *service) {
		s.authorizer = authorizer
	}
}

// WithReservedSlugs extends the reserved slug set for this service instance.
func WithReservedSlugs(slugs ...string) ServiceOption {
	return func(s *service) {
		for _, candidate := range slugs {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if candidate != "" {
				s.reserved[candidate] = struct{}{}
			}
		}
	}
}

type service struct {
	repo       Repository
	now        func() time.Time
	id         IDGenerator
	retention  int
	logger     interfaces.Logger
	authorizer interfaces.Authorizer
	reserved   map[string]struct{}

	// pruneLocks serializes save/revert per page so concurrent prunes never
	// delete a revision another request just pointed the draft at.
	pruneMu    sync.Mutex
	pruneLocks map[uuid.UUID]*sync.Mutex
}

// NewService constructs a page service with the required dependencies.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:       repo,
		now:        time.Now,
		id:         uuid.New,
		retention:  DefaultRevisionRetention,
		logger:     logging.NoOp(),
		reserved:   make(map[string]struct{}),
		pruneLocks: make(map[uuid.UUID]*sync.Mutex),
	}
	for candidate := range reservedSlugs {
		s.reserved[candidate] = struct{}{}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create provisions a page with an empty draft revision and no published
// revision. The slug must be unique, well formed, and not reserved.
func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	slug := strings.TrimSpace(req.Slug)
	if err := s.validateSlug(slug); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.authorize(ctx, req.CreatedBy, "pages.create"); err != nil {
		return nil, err
	}

	now := s.now()
	revision := &PageRevision{
		ID:        s.id(),
		Title:     title,
		Blocks:    []blocks.Block{},
		CreatedBy: req.CreatedBy,
		CreatedAt: now,
	}
	record := &Page{
		ID:              s.id(),
		Slug:            slug,
		Title:           title,
		DraftRevisionID: &revision.ID,
		CreatedBy:       req.CreatedBy,
		UpdatedBy:       req.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	revision.PageID = record.ID

	created, err := s.repo.CreateWithRevision(ctx, record, revision)
	if err != nil {
		return nil, err
	}

	s.logger.Info("page created", "page_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

// Save snapshots the request into a new draft revision. Block payloads are
// sanitized before they are persisted; storage never holds raw markup.
func (s *service) Save(ctx context.Context, req SavePageRequest) (*PageRevision, error) {
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	if err := s.authorize(ctx, req.SavedBy, "pages.save"); err != nil {
		return nil, err
	}

	page, err := s.repo.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = page.Title
	}

	var content []blocks.Block
	if req.RawBlocks != nil {
		content = sanitize.Blocks(req.RawBlocks)
	} else {
		content = make([]blocks.Block, 0, len(req.Blocks))
		for _, block := range req.Blocks {
			content = append(content, sanitize.Block(block))
		}
	}

	revision := &PageRevision{
		ID:        s.id(),
		PageID:    page.ID,
		Title:     title,
		Blocks:    content,
		CreatedBy: req.SavedBy,
		CreatedAt: s.now(),
	}

	unlock := s.lockPage(page.ID)
	defer unlock()

	page.Title = title
	page.DraftRevisionID = &revision.ID
	page.UpdatedBy = req.SavedBy
	page.UpdatedAt = revision.CreatedAt
	if _, err := s.repo.UpdateWithRevision(ctx, page, revision); err != nil {
		return nil, err
	}

	if err := s.pruneRevisions(ctx, page); err != nil {
		s.logger.Warn("revision prune failed", "page_id", page.ID, "error", err)
	}

	s.logger.Debug("draft saved", "page_id", page.ID, "revision_id", revision.ID)
	return revision, nil
}

// Publish points the published head at the current draft. Publishing is
// idempotent: re-publishing an unchanged draft is a no-op.
func (s *service) Publish(ctx context.Context, req PublishPageRequest) (*Page, error) {
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	if err := s.authorize(ctx, req.PublishedBy, "pages.publish"); err != nil {
		return nil, err
	}

	unlock := s.lockPage(req.PageID)
	defer unlock()

	page, err := s.repo.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}
	if page.DraftRevisionID == nil {
		return nil, ErrNoDraftToPublish
	}
	if page.PublishedRevisionID != nil && *page.PublishedRevisionID == *page.DraftRevisionID {
		return page, nil
	}

	// Dangling draft pointers are a hard error, not a silent publish.
	if _, err := s.repo.GetRevision(ctx, page.ID, *page.DraftRevisionID); err != nil {
		return nil, err
	}

	published := *page.DraftRevisionID
	page.PublishedRevisionID = &published
	page.UpdatedBy = req.PublishedBy
	page.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, page)
	if err != nil {
		return nil, err
	}

	s.logger.Info("page published", "page_id", updated.ID, "revision_id", published)
	return updated, nil
}

// Revert copies a historical revision into a brand new draft revision. The
// reverted-to revision itself stays untouched; history only moves forward.
func (s *service) Revert(ctx context.Context, req RevertPageRequest) (*PageRevision, error) {
	if req.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	if req.RevisionID == uuid.Nil {
		return nil, ErrRevisionRequired
	}
	if err := s.authorize(ctx, req.RevertedBy, "pages.revert"); err != nil {
		return nil, err
	}

	page, err := s.repo.GetByID(ctx, req.PageID)
	if err != nil {
		return nil, err
	}
	source, err := s.repo.GetRevision(ctx, page.ID, req.RevisionID)
	if err != nil {
		return nil, err
	}
	if source.PageID != page.ID {
		return nil, ErrRevisionMismatch
	}

	revision := &PageRevision{
		ID:        s.id(),
		PageID:    page.ID,
		Title:     source.Title,
		Blocks:    blocks.CloneBlocks(source.Blocks),
		CreatedBy: req.RevertedBy,
		CreatedAt: s.now(),
	}

	unlock := s.lockPage(page.ID)
	defer unlock()

	page.Title = source.Title
	page.DraftRevisionID = &revision.ID
	page.UpdatedBy = req.RevertedBy
	page.UpdatedAt = revision.CreatedAt
	if _, err := s.repo.UpdateWithRevision(ctx, page, revision); err != nil {
		return nil, err
	}

	if err := s.pruneRevisions(ctx, page); err != nil {
		s.logger.Warn("revision prune failed", "page_id", page.ID, "error", err)
	}

	s.logger.Info("page reverted", "page_id", page.ID, "source_revision_id", source.ID, "revision_id", revision.ID)
	return revision, nil
}

// Delete removes the page and its entire revision history.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPageRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page deleted", "page_id", id)
	return nil
}

func (s *service) ListRevisions(ctx context.Context, pageID uuid.UUID) ([]*PageRevision, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.repo.ListRevisions(ctx, pageID)
}

func (s *service) GetRevision(ctx context.Context, pageID, revisionID uuid.UUID) (*PageRevision, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	if revisionID == uuid.Nil {
		return nil, ErrRevisionRequired
	}
	return s.repo.GetRevision(ctx, pageID, revisionID)
}

// DraftRevision resolves the draft head for editor preview.
func (s *service) DraftRevision(ctx context.Context, pageID uuid.UUID) (*PageRevision, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	page, err := s.repo.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.DraftRevisionID == nil {
		return nil, &RevisionNotFoundError{PageID: pageID}
	}
	return s.repo.GetRevision(ctx, page.ID, *page.DraftRevisionID)
}

// PublishedRevision resolves the public view of a slug. Pages without a
// published revision are indistinguishable from missing pages; drafts never
// leak through this boundary.
func (s *service) PublishedRevision(ctx context.Context, slug string) (*Page, *PageRevision, error) {
	page, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if page.PublishedRevisionID == nil {
		return nil, nil, &PageNotFoundError{Key: slug}
	}
	revision, err := s.repo.GetRevision(ctx, page.ID, *page.PublishedRevisionID)
	if err != nil {
		return nil, nil, err
	}
	return page, revision, nil
}

// pruneRevisions enforces retention: the published revision plus the most
// recent s.retention revisions survive, everything else is deleted. Callers
// hold the page lock; the page is re-read under it so the head pointers used
// for the keep set are current.
func (s *service) pruneRevisions(ctx context.Context, stale *Page) error {
	page, err := s.repo.GetByID(ctx, stale.ID)
	if err != nil {
		return err
	}
	revisions, err := s.repo.ListRevisions(ctx, page.ID)
	if err != nil {
		return err
	}
	if len(revisions) <= s.retention {
		return nil
	}

	keep := make(map[uuid.UUID]struct{}, s.retention+1)
	for i := 0; i < s.retention && i < len(revisions); i++ {
		keep[revisions[i].ID] = struct{}{}
	}
	if page.PublishedRevisionID != nil {
		keep[*page.PublishedRevisionID] = struct{}{}
	}
	if page.DraftRevisionID != nil {
		keep[*page.DraftRevisionID] = struct{}{}
	}

	var doomed []uuid.UUID
	for _, revision := range revisions {
		if _, kept := keep[revision.ID]; !kept {
			doomed = append(doomed, revision.ID)
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	if err := s.repo.DeleteRevisions(ctx, page.ID, doomed); err != nil {
		return err
	}
	s.logger.Debug("revisions pruned", "page_id", page.ID, "deleted", len(doomed))
	return nil
}

func (s *service) lockPage(id uuid.UUID) func() {
	s.pruneMu.Lock()
	lock, ok := s.pruneLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.pruneLocks[id] = lock
	}
	s.pruneMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *service) validateSlug(value string) error {
	if value == "" {
		return ErrSlugRequired
	}
	if !slugPattern.MatchString(value) {
		return ErrSlugInvalid
	}
	if _, reserved := s.reserved[value]; reserved {
		return ErrSlugReserved
	}
	return nil
}

func (s *service) authorize(ctx context.Context, actor uuid.UUID, action string) error {
	if s.authorizer == nil {
		return nil
	}
	if actor == uuid.Nil {
		return ErrActorRequired
	}
	if err := s.authorizer.Allow(ctx, actor, action); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotAuthorized, action, err)
	}
	return nil
}

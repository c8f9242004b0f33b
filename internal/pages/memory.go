package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory page store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*Page
	slugIndex map[string]uuid.UUID
	revisions map[uuid.UUID]map[uuid.UUID]*PageRevision
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pages:     make(map[uuid.UUID]*Page),
		slugIndex: make(map[string]uuid.UUID),
		revisions: make(map[uuid.UUID]map[uuid.UUID]*PageRevision),
	}
}

// CreateWithRevision inserts the page and its first revision as one unit.
func (m *MemoryRepository) CreateWithRevision(_ context.Context, record *Page, revision *PageRevision) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.slugIndex[record.Slug]; taken {
		return nil, &SlugConflictError{Slug: record.Slug}
	}

	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	m.revisions[copied.ID] = make(map[uuid.UUID]*PageRevision)
	if revision != nil {
		m.revisions[copied.ID][revision.ID] = cloneRevision(revision)
	}
	return clonePage(copied), nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(page), nil
}

// GetBySlug retrieves a page by slug.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePage(m.pages[id]), nil
}

// List returns every page sorted by slug.
func (m *MemoryRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.pages))
	for _, record := range m.pages {
		out = append(out, clonePage(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// Update persists head pointer and metadata changes for a page.
func (m *MemoryRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	if record.Slug != current.Slug {
		if _, taken := m.slugIndex[record.Slug]; taken {
			return nil, &SlugConflictError{Slug: record.Slug}
		}
		delete(m.slugIndex, current.Slug)
		m.slugIndex[record.Slug] = record.ID
	}

	updated := clonePage(record)
	updated.CreatedAt = current.CreatedAt
	updated.CreatedBy = current.CreatedBy
	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

// UpdateWithRevision appends a revision and repoints the page head as a
// single unit. The page is verified before anything is written, so a failed
// call leaves no orphan revision behind.
func (m *MemoryRepository) UpdateWithRevision(_ context.Context, record *Page, revision *PageRevision) (*PageRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	if record.Slug != current.Slug {
		if _, taken := m.slugIndex[record.Slug]; taken {
			return nil, &SlugConflictError{Slug: record.Slug}
		}
		delete(m.slugIndex, current.Slug)
		m.slugIndex[record.Slug] = record.ID
	}

	if m.revisions[record.ID] == nil {
		m.revisions[record.ID] = make(map[uuid.UUID]*PageRevision)
	}
	m.revisions[record.ID][revision.ID] = cloneRevision(revision)

	updated := clonePage(record)
	updated.CreatedAt = current.CreatedAt
	updated.CreatedBy = current.CreatedBy
	m.pages[record.ID] = updated
	return cloneRevision(revision), nil
}

// Delete removes a page and all its revisions.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.slugIndex, page.Slug)
	delete(m.pages, id)
	delete(m.revisions, id)
	return nil
}

// GetRevision retrieves a single revision scoped to its page.
func (m *MemoryRepository) GetRevision(_ context.Context, pageID, revisionID uuid.UUID) (*PageRevision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	revision, ok := m.revisions[pageID][revisionID]
	if !ok {
		return nil, &RevisionNotFoundError{PageID: pageID, RevisionID: revisionID}
	}
	return cloneRevision(revision), nil
}

// ListRevisions returns a page's revisions newest first.
func (m *MemoryRepository) ListRevisions(_ context.Context, pageID uuid.UUID) ([]*PageRevision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.pages[pageID]; !ok {
		return nil, &PageNotFoundError{Key: pageID.String()}
	}
	out := make([]*PageRevision, 0, len(m.revisions[pageID]))
	for _, revision := range m.revisions[pageID] {
		out = append(out, cloneRevision(revision))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

// DeleteRevisions removes the identified revisions from a page.
func (m *MemoryRepository) DeleteRevisions(_ context.Context, pageID uuid.UUID, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.revisions[pageID]
	if !ok {
		return &PageNotFoundError{Key: pageID.String()}
	}
	for _, id := range ids {
		delete(bucket, id)
	}
	return nil
}

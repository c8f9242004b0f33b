package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/blocks"
)

// CachedDraft is an unsaved working copy of a page held outside the server's
// revision history, e.g. in browser storage. BaseRevisionID records the draft
// revision the copy was forked from; reconciliation compares it against the
// server's current draft head.
type CachedDraft struct {
	PageID         uuid.UUID
	BaseRevisionID uuid.UUID
	Title          string
	Blocks         []blocks.Block
	UpdatedAt      time.Time
}

// DraftCache stores at most one working copy per page. Implementations must
// return (nil, nil) for a cache miss rather than an error.
type DraftCache interface {
	Load(ctx context.Context, pageID uuid.UUID) (*CachedDraft, error)
	Store(ctx context.Context, draft CachedDraft) error
	Discard(ctx context.Context, pageID uuid.UUID) error
}

// MemoryDraftCache is an in-process DraftCache for tests and single-node use.
type MemoryDraftCache struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*CachedDraft
}

// NewMemoryDraftCache constructs the cache.
func NewMemoryDraftCache() *MemoryDraftCache {
	return &MemoryDraftCache{drafts: make(map[uuid.UUID]*CachedDraft)}
}

func (c *MemoryDraftCache) Load(_ context.Context, pageID uuid.UUID) (*CachedDraft, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	draft, ok := c.drafts[pageID]
	if !ok {
		return nil, nil
	}
	return cloneCachedDraft(draft), nil
}

func (c *MemoryDraftCache) Store(_ context.Context, draft CachedDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[draft.PageID] = cloneCachedDraft(&draft)
	return nil
}

func (c *MemoryDraftCache) Discard(_ context.Context, pageID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, pageID)
	return nil
}

func cloneCachedDraft(draft *CachedDraft) *CachedDraft {
	out := *draft
	out.Blocks = blocks.CloneBlocks(draft.Blocks)
	return &out
}

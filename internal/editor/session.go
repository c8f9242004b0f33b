package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/translate"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

var (
	ErrSessionClosed   = errors.New("editor: session closed")
	ErrBlockNotFound   = errors.New("editor: block not found")
	ErrIndexOutOfRange = errors.New("editor: index out of range")
	ErrNoTranslator    = errors.New("editor: no translation service configured")
)

// DraftSource reports where a session's working copy came from on open.
type DraftSource string

const (
	// DraftSourceServer means the session loaded the server's draft head.
	DraftSourceServer DraftSource = "server"
	// DraftSourceCache means a local working copy forked from the current
	// draft head was restored.
	DraftSourceCache DraftSource = "cache"
)

// SessionOption configures a session at open time.
type SessionOption func(*Session)

// WithDraftCache attaches a local draft cache, enabling crash recovery of
// unsaved work.
func WithDraftCache(cache DraftCache) SessionOption {
	return func(s *Session) {
		s.cache = cache
	}
}

// WithTranslator attaches the machine-translation service used by
// TranslateBlock.
func WithTranslator(translator *translate.Service) SessionOption {
	return func(s *Session) {
		s.translator = translator
	}
}

// WithSessionLogger overrides the module logger.
func WithSessionLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionLocales overrides the locale set offered by the editor.
func WithSessionLocales(locales []string) SessionOption {
	return func(s *Session) {
		if normalized := i18n.NormalizeLocales(locales); len(normalized) > 0 {
			s.locales = normalized
		}
	}
}

// WithActor records the identity whose id is stamped on revisions the
// session creates.
func WithActor(actor interfaces.Identity) SessionOption {
	return func(s *Session) {
		s.actor = actor
	}
}

// Session is one editor's working copy of a page: an ordered block list plus
// title, locale selection, and save/translate orchestration. A session is
// safe for concurrent use; every mutation bumps an internal sequence so that
// slow asynchronous work (translation fan-out) can detect it went stale.
type Session struct {
	service    pages.Service
	translator *translate.Service
	cache      DraftCache
	logger     interfaces.Logger
	locales    []string
	factory    *blocks.Factory
	actor      interfaces.Identity

	mu           sync.Mutex
	pageID       uuid.UUID
	baseRevision uuid.UUID
	title        string
	blocks       []blocks.Block
	activeLocale string
	source       DraftSource
	seq          uint64
	dirty        bool
	closed       bool
}

// OpenSession loads a page's draft into a new editing session. When a draft
// cache holds a working copy forked from the page's current draft head, that
// copy wins; a cached copy based on any other revision is stale and is
// discarded. That reconcile step runs on every open.
func OpenSession(ctx context.Context, service pages.Service, pageID uuid.UUID, opts ...SessionOption) (*Session, error) {
	s := &Session{
		service: service,
		logger:  logging.NoOp(),
		locales: i18n.DefaultLocales(),
		pageID:  pageID,
		source:  DraftSourceServer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.factory = blocks.NewFactory(s.locales)
	s.activeLocale = s.locales[0]

	draft, err := service.DraftRevision(ctx, pageID)
	if err != nil {
		return nil, err
	}
	s.baseRevision = draft.ID
	s.title = draft.Title
	s.blocks = blocks.CloneBlocks(draft.Blocks)

	if s.cache != nil {
		cached, err := s.cache.Load(ctx, pageID)
		if err != nil {
			s.logger.Warn("draft cache load failed", "page_id", pageID, "error", err)
		} else if cached != nil {
			if cached.BaseRevisionID == draft.ID {
				s.title = cached.Title
				s.blocks = blocks.CloneBlocks(cached.Blocks)
				s.source = DraftSourceCache
				s.dirty = true
			} else {
				// The server moved on; the local copy has no base to merge into.
				if err := s.cache.Discard(ctx, pageID); err != nil {
					s.logger.Warn("draft cache discard failed", "page_id", pageID, "error", err)
				}
				s.logger.Info("stale local draft discarded", "page_id", pageID, "cached_base", cached.BaseRevisionID, "draft", draft.ID)
			}
		}
	}

	return s, nil
}

// Source reports where the working copy came from on open.
func (s *Session) Source() DraftSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Dirty reports whether the working copy has unsaved edits.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Title returns the working title.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle updates the working title.
func (s *Session) SetTitle(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.title = title
	s.touch(ctx)
	return nil
}

// ActiveLocale returns the locale currently being edited.
func (s *Session) ActiveLocale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocale
}

// SetActiveLocale switches the locale being edited. Unknown locales are
// rejected.
func (s *Session) SetActiveLocale(locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := i18n.NormalizeLocale(locale)
	if !i18n.ContainsLocale(s.locales, normalized) {
		return fmt.Errorf("editor: unknown locale %q", locale)
	}
	s.activeLocale = normalized
	return nil
}

// Blocks returns a deep copy of the working block list.
func (s *Session) Blocks() []blocks.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return blocks.CloneBlocks(s.blocks)
}

// InsertBlock creates a fresh block of the given type at index. Index -1 (or
// any index past the end) appends.
func (s *Session) InsertBlock(ctx context.Context, t blocks.Type, index int) (blocks.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return blocks.Block{}, ErrSessionClosed
	}

	block := s.factory.New(t)
	if index < 0 || index > len(s.blocks) {
		index = len(s.blocks)
	}
	s.blocks = append(s.blocks[:index], append([]blocks.Block{block}, s.blocks[index:]...)...)
	s.touch(ctx)
	return blocks.Block{ID: block.ID, Type: block.Type, Data: blocks.CloneData(block.Data)}, nil
}

// MoveBlock reorders the block at from to position to.
func (s *Session) MoveBlock(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if from < 0 || from >= len(s.blocks) || to < 0 || to >= len(s.blocks) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	block := s.blocks[from]
	rest := append(s.blocks[:from], s.blocks[from+1:]...)
	s.blocks = append(rest[:to], append([]blocks.Block{block}, rest[to:]...)...)
	s.touch(ctx)
	return nil
}

// DuplicateBlock clones the identified block and inserts the copy right after
// it. The copy gets a new block id; nested item ids are preserved.
func (s *Session) DuplicateBlock(ctx context.Context, blockID string) (blocks.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return blocks.Block{}, ErrSessionClosed
	}
	index := s.indexOf(blockID)
	if index < 0 {
		return blocks.Block{}, ErrBlockNotFound
	}

	clone := s.factory.Clone(s.blocks[index])
	s.blocks = append(s.blocks[:index+1], append([]blocks.Block{clone}, s.blocks[index+1:]...)...)
	s.touch(ctx)
	return blocks.Block{ID: clone.ID, Type: clone.Type, Data: blocks.CloneData(clone.Data)}, nil
}

// RemoveBlock deletes the identified block.
func (s *Session) RemoveBlock(ctx context.Context, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	index := s.indexOf(blockID)
	if index < 0 {
		return ErrBlockNotFound
	}
	s.blocks = append(s.blocks[:index], s.blocks[index+1:]...)
	s.touch(ctx)
	return nil
}

// UpdateBlock applies fn to a deep copy of the identified block's data and
// swaps the result in. fn must not retain the data past its return.
func (s *Session) UpdateBlock(ctx context.Context, blockID string, fn func(data blocks.Data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	index := s.indexOf(blockID)
	if index < 0 {
		return ErrBlockNotFound
	}

	data := blocks.CloneData(s.blocks[index].Data)
	fn(data)
	s.blocks[index].Data = data
	s.touch(ctx)
	return nil
}

// AppendBlocks inserts pre-built blocks (e.g. a markdown import) at the end
// of the list.
func (s *Session) AppendBlocks(ctx context.Context, list []blocks.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.blocks = append(s.blocks, blocks.CloneBlocks(list)...)
	s.touch(ctx)
	return nil
}

// TranslateBlock runs the translation fan-out for one block and applies the
// result, unless the session was edited or closed while the fan-out was in
// flight; stale results are dropped on the floor.
func (s *Session) TranslateBlock(ctx context.Context, blockID string) (translate.Result, error) {
	if s.translator == nil {
		return translate.Result{}, ErrNoTranslator
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return translate.Result{}, ErrSessionClosed
	}
	index := s.indexOf(blockID)
	if index < 0 {
		s.mu.Unlock()
		return translate.Result{}, ErrBlockNotFound
	}
	snapshot := blocks.Block{
		ID:   s.blocks[index].ID,
		Type: s.blocks[index].Type,
		Data: blocks.CloneData(s.blocks[index].Data),
	}
	startSeq := s.seq
	s.mu.Unlock()

	translated, result := s.translator.TranslateBlock(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.seq != startSeq {
		s.logger.Debug("stale translation discarded", "page_id", s.pageID, "block_id", blockID)
		return result, nil
	}
	index = s.indexOf(blockID)
	if index < 0 {
		return result, nil
	}
	s.blocks[index].Data = translated.Data
	s.touch(ctx)
	return result, nil
}

// Save snapshots the working copy into a new draft revision and clears the
// local cache entry for the page.
func (s *Session) Save(ctx context.Context) (*pages.PageRevision, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	req := pages.SavePageRequest{
		PageID:  s.pageID,
		Title:   s.title,
		Blocks:  blocks.CloneBlocks(s.blocks),
		SavedBy: s.actor.ID,
	}
	s.mu.Unlock()

	revision, err := s.service.Save(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.baseRevision = revision.ID
	s.dirty = false
	s.seq++
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Discard(ctx, s.pageID); err != nil {
			s.logger.Warn("draft cache discard failed", "page_id", s.pageID, "error", err)
		}
	}
	return revision, nil
}

// Close ends the session. In-flight translations resolve as stale and the
// working copy stays in the cache for the next open.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// touch bumps the edit sequence and mirrors the working copy into the cache.
// Callers hold s.mu.
func (s *Session) touch(ctx context.Context) {
	s.seq++
	s.dirty = true
	if s.cache == nil {
		return
	}
	err := s.cache.Store(ctx, CachedDraft{
		PageID:         s.pageID,
		BaseRevisionID: s.baseRevision,
		Title:          s.title,
		Blocks:         blocks.CloneBlocks(s.blocks),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		s.logger.Warn("draft cache store failed", "page_id", s.pageID, "error", err)
	}
}

func (s *Session) indexOf(blockID string) int {
	for i := range s.blocks {
		if s.blocks[i].ID == blockID {
			return i
		}
	}
	return -1
}

// Package memory provides an in-memory implementation of
// transport.TranslationStore for testing and lightweight deployments.
// Translations are lost when the process restarts. Optional LRU eviction
// bounds memory usage.
package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/storage"
	"github.com/schliff-dev/schliff/pkg/transport"
)

// entry holds a stored translation and its metadata.
type entry struct {
	translation *api.Translation
	tenantID    string
	lruElem     *list.Element
}

// Store is an in-memory TranslationStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently used, back = least recently used
	maxSize int        // 0 = unlimited
}

// Ensure Store implements transport.TranslationStore at compile time.
var _ transport.TranslationStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest entry is evicted when the
// limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveTranslation records a finished translation in memory.
func (s *Store) SaveTranslation(ctx context.Context, t *api.Translation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[t.ID]; exists {
		return storage.ErrConflict
	}

	tenantID := storage.GetTenant(ctx)

	// Evict if at capacity.
	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.lruList.PushFront(t.ID)
	s.entries[t.ID] = &entry{
		translation: t,
		tenantID:    tenantID,
		lruElem:     elem,
	}

	return nil
}

// GetTranslation retrieves a translation by ID. Returns ErrNotFound if the
// translation does not exist. Scoped by tenant when a tenant is present in
// the context.
func (s *Store) GetTranslation(ctx context.Context, id string) (*api.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	tenantID := storage.GetTenant(ctx)
	if tenantID != "" && e.tenantID != tenantID {
		return nil, storage.ErrNotFound
	}

	s.lruList.MoveToFront(e.lruElem)
	return e.translation, nil
}

// DeleteTranslation removes a translation by ID.
func (s *Store) DeleteTranslation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return storage.ErrNotFound
	}

	tenantID := storage.GetTenant(ctx)
	if tenantID != "" && e.tenantID != tenantID {
		return storage.ErrNotFound
	}

	s.lruList.Remove(e.lruElem)
	delete(s.entries, id)
	return nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored translations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictOldest removes the least recently used entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}

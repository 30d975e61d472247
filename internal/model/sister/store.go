package sister

import "sync"

// Store exposes roster retrieval for the lookup service and HTTP handlers.
type Store interface {
	List() []Sister
	FindByName(name string) (Sister, bool)
	Len() int
	Replace(items []Sister)
}

// MemoryStore implements Store with an in-memory slice. The whole slice is
// swapped on Replace; there is no in-place mutation.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Sister
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied roster.
func NewMemoryStore(items []Sister) *MemoryStore {
	return &MemoryStore{items: append([]Sister(nil), items...)}
}

// List returns a copy of the current roster in store order.
func (s *MemoryStore) List() []Sister {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Sister(nil), s.items...)
}

// FindByName looks up a sister by normalized name. When several records
// normalize to the same key, the first one in store order wins.
func (s *MemoryStore) FindByName(name string) (Sister, bool) {
	key := NormalizeName(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if NormalizeName(item.Name) == key {
			return item, true
		}
	}
	return Sister{}, false
}

// Len reports the current roster size.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the roster atomically for the supplied items.
func (s *MemoryStore) Replace(items []Sister) {
	copied := append([]Sister(nil), items...)

	s.mu.Lock()
	s.items = copied
	s.mu.Unlock()
}

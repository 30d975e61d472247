package roster

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/phigamnu/sistergreet/internal/model/sister"
)

// LoadEvent describes one completed load attempt.
type LoadEvent struct {
	Generation string    `json:"generation"`
	Source     string    `json:"source"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// LoadListener receives load events. Listeners must not block; they are
// invoked inline after the store swap.
type LoadListener interface {
	RosterLoaded(event LoadEvent)
}

// Service owns the roster store and its population. Lookups lazily trigger
// the first load; concurrent lookups against an unpopulated store share a
// single in-flight load. Load failures never escape a lookup: the store is
// reset to empty and lookups degrade to absent.
type Service struct {
	store     sister.Store
	source    Source
	group     singleflight.Group
	listeners []LoadListener

	mu         sync.RWMutex
	loaded     bool
	generation string
	lastEvent  LoadEvent
}

// NewService bootstraps a roster service over an empty store.
func NewService(source Source, listeners ...LoadListener) *Service {
	return &Service{
		store:     sister.NewMemoryStore(nil),
		source:    source,
		listeners: listeners,
	}
}

// AddListener registers a listener. Call during wiring, before the service
// starts taking lookups.
func (s *Service) AddListener(listener LoadListener) {
	s.listeners = append(s.listeners, listener)
}

// Exists reports whether a record matches the normalized name.
func (s *Service) Exists(ctx context.Context, name string) bool {
	_, ok := s.Find(ctx, name)
	return ok
}

// Find returns the first record whose name normalizes equal to the input, or
// absent. The store is populated on first use.
func (s *Service) Find(ctx context.Context, name string) (sister.Sister, bool) {
	s.ensureLoaded(ctx)
	return s.store.FindByName(name)
}

// List returns the current roster, populating the store on first use.
func (s *Service) List(ctx context.Context) []sister.Sister {
	s.ensureLoaded(ctx)
	return s.store.List()
}

// Generation returns the id of the most recent successful load, or "" when
// the store has never been populated.
func (s *Service) Generation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Reload forces a fresh load regardless of current state and returns the
// resulting event. Shared with concurrent lazy loads through the same
// single-flight group.
func (s *Service) Reload(ctx context.Context) LoadEvent {
	return s.load(ctx, true)
}

// ensureLoaded populates the store at most once per service lifetime. A
// failed load still counts as the one attempt; lookups afterwards see an
// empty store until an explicit Reload.
func (s *Service) ensureLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return
	}
	s.load(ctx, false)
}

func (s *Service) load(ctx context.Context, force bool) LoadEvent {
	result, _, _ := s.group.Do("load", func() (any, error) {
		if !force {
			// A lazy caller that raced past the loaded check while another
			// load finished must not fetch again.
			s.mu.RLock()
			loaded, last := s.loaded, s.lastEvent
			s.mu.RUnlock()
			if loaded {
				return last, nil
			}
		}

		event := LoadEvent{Source: s.source.Name(), At: time.Now().UTC()}

		items, err := s.source.Load(ctx)
		if err != nil {
			// Fail soft: the page must still render a not-found state.
			log.Printf("[roster] load from %s failed: %v", s.source.Name(), err)
			event.Error = err.Error()
			items = nil
		} else {
			event.Generation = uuid.NewString()
			event.Count = len(items)
			warnDuplicates(items)
		}

		s.store.Replace(items)

		s.mu.Lock()
		s.loaded = true
		s.lastEvent = event
		if event.Error == "" {
			s.generation = event.Generation
		}
		s.mu.Unlock()

		if event.Error == "" {
			log.Printf("[roster] loaded %d records from %s (generation %s)", event.Count, event.Source, event.Generation)
		}
		for _, listener := range s.listeners {
			listener.RosterLoaded(event)
		}
		return event, nil
	})
	return result.(LoadEvent)
}

// warnDuplicates flags records that collide on the normalized lookup key.
// The first record in store order wins; operators should fix the source.
func warnDuplicates(items []sister.Sister) {
	seen := make(map[string]string, len(items))
	for _, item := range items {
		key := sister.NormalizeName(item.Name)
		if first, ok := seen[key]; ok {
			log.Printf("[roster] duplicate normalized name %q: %q shadowed by %q", key, item.Name, first)
			continue
		}
		seen[key] = item.Name
	}
}

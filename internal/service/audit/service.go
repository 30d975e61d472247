package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phigamnu/sistergreet/internal/service/roster"
)

// Event is one entry in the operator-visible trail.
type Event struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}

// Event kinds recorded by the service.
const (
	KindLoad     = "load"
	KindValidate = "validate"
)

// Service keeps a bounded in-memory trail of roster loads and validation
// requests for the admin surface.
type Service struct {
	mu     sync.RWMutex
	events []Event
	limit  int
}

// NewService bootstraps the trail with the given retention limit.
func NewService(limit int) *Service {
	if limit < 1 {
		limit = 1
	}
	return &Service{events: make([]Event, 0, limit), limit: limit}
}

// Record appends an event, evicting the oldest entries beyond the limit.
func (s *Service) Record(kind, detail string) Event {
	event := Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	if overflow := len(s.events) - s.limit; overflow > 0 {
		s.events = append(s.events[:0], s.events[overflow:]...)
	}
	s.mu.Unlock()

	return event
}

// Recent returns the trail newest-first.
func (s *Service) Recent() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Event, len(s.events))
	for i, event := range s.events {
		copied[len(s.events)-1-i] = event
	}
	return copied
}

// RosterLoaded records load events, satisfying roster.LoadListener.
func (s *Service) RosterLoaded(event roster.LoadEvent) {
	if event.Error != "" {
		s.Record(KindLoad, fmt.Sprintf("load from %s failed: %s", event.Source, event.Error))
		return
	}
	s.Record(KindLoad, fmt.Sprintf("loaded %d records from %s (generation %s)", event.Count, event.Source, event.Generation))
}

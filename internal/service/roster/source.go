package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phigamnu/sistergreet/internal/model/sister"
)

// Source supplies the full roster. A load replaces the store wholesale; there
// is no incremental merge.
type Source interface {
	Load(ctx context.Context) ([]sister.Sister, error)
	Name() string
}

// HTTPSource fetches the roster from a JSON document whose root is an array
// of records.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource builds a source for the given URL with a fixed request
// timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Load fetches and parses the roster document in full.
func (s *HTTPSource) Load(ctx context.Context) ([]sister.Sister, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster: unexpected status %d", resp.StatusCode)
	}

	var items []sister.Sister
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return items, nil
}

// Name identifies the source in logs and events.
func (s *HTTPSource) Name() string { return "http" }

// StaticSource serves a fixed roster, used when no data URL is configured.
type StaticSource struct {
	items []sister.Sister
}

// NewStaticSource wraps the supplied roster.
func NewStaticSource(items []sister.Sister) *StaticSource {
	return &StaticSource{items: append([]sister.Sister(nil), items...)}
}

// Load returns a copy of the wrapped roster.
func (s *StaticSource) Load(_ context.Context) ([]sister.Sister, error) {
	return append([]sister.Sister(nil), s.items...), nil
}

// Name identifies the source in logs and events.
func (s *StaticSource) Name() string { return "seed" }

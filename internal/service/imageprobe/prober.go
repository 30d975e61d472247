package imageprobe

import (
	"context"
	"net/http"
	"time"
)

// Prober checks whether an image URL answers within a fixed deadline. An
// image that cannot be confirmed in time is treated as unusable rather than
// holding up the caller.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// New builds a prober with the given per-probe deadline.
func New(timeout time.Duration) *Prober {
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Usable reports whether the URL responded with a success status before the
// deadline. Servers that reject HEAD get one GET retry.
func (p *Prober) Usable(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.probe(ctx, http.MethodHead, rawURL)
	if err != nil {
		return false
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = p.probe(ctx, http.MethodGet, rawURL)
		if err != nil {
			return false
		}
	}
	return status >= 200 && status < 300
}

func (p *Prober) probe(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

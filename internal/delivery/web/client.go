// Package web renders the server-side pages. Pages read through the public
// API over the configured base URL rather than hitting the repositories
// directly, so the rendered pages exercise the same surface as any other
// client.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devevents/internal/domain"
)

// API is the slice of the events API the pages read from.
type API interface {
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	GetEvent(ctx context.Context, slug string) (*domain.Event, error)
	ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error)
	CountBookings(ctx context.Context, slug string) (int64, error)
}

// APIClient calls the events API over HTTP.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *APIClient) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	var body struct {
		Events []*domain.Event `json:"events"`
	}
	if err := c.get(ctx, "/api/events", &body); err != nil {
		return nil, err
	}
	return body.Events, nil
}

func (c *APIClient) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	var body struct {
		Event *domain.Event `json:"event"`
	}
	if err := c.get(ctx, "/api/events/"+slug, &body); err != nil {
		return nil, err
	}
	if body.Event == nil {
		return nil, fmt.Errorf("event missing from response for slug %q", slug)
	}
	return body.Event, nil
}

func (c *APIClient) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	var body struct {
		Events []*domain.Event `json:"events"`
	}
	if err := c.get(ctx, "/api/events/"+slug+"/similar", &body); err != nil {
		return nil, err
	}
	return body.Events, nil
}

func (c *APIClient) CountBookings(ctx context.Context, slug string) (int64, error) {
	var body struct {
		Count int64 `json:"count"`
	}
	if err := c.get(ctx, "/api/events/"+slug+"/bookings/count", &body); err != nil {
		return 0, err
	}
	return body.Count, nil
}

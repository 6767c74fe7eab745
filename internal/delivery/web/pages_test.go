package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAPI struct {
	events     []*domain.Event
	listErr    error
	event      *domain.Event
	getErr     error
	similar    []*domain.Event
	similarErr error
	count      int64
	countErr   error
}

func (f *fakeAPI) ListEvents(context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeAPI) GetEvent(context.Context, string) (*domain.Event, error) {
	return f.event, f.getErr
}

func (f *fakeAPI) ListSimilarEvents(context.Context, string) ([]*domain.Event, error) {
	return f.similar, f.similarErr
}

func (f *fakeAPI) CountBookings(context.Context, string) (int64, error) {
	return f.count, f.countErr
}

func newPages(t *testing.T, api API) *Pages {
	t.Helper()
	pages, err := NewPages(testLogger, api)
	require.NoError(t, err)
	return pages
}

func TestPages_Home(t *testing.T) {
	t.Run("lists events from the api", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{events: []*domain.Event{
			{Title: "GopherCon 2026", Slug: "gophercon-2026", Date: "2026-03-14", Time: "18:30"},
		}})

		rec := httptest.NewRecorder()
		pages.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "GopherCon 2026")
		assert.Contains(t, body, `/events/gophercon-2026`)
		assert.NotContains(t, body, "temporarily unavailable")
	})

	t.Run("falls back to the built-in set when the api fails", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{listErr: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		pages.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "temporarily unavailable")
		for _, ev := range fallbackEvents {
			assert.Contains(t, body, ev.Title)
		}
	})
}

func TestPages_EventDetail(t *testing.T) {
	newRequest := func(slug string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/events/"+slug, nil)
		req.SetPathValue("slug", slug)
		return req
	}

	event := &domain.Event{
		Title:     "GopherCon 2026",
		Slug:      "gophercon-2026",
		Overview:  "Three days of Go",
		Venue:     "Moscone Center",
		Location:  "San Francisco, CA",
		Date:      "2026-03-14",
		Time:      "18:30",
		Mode:      domain.ModeHybrid,
		Audience:  "Go developers",
		Agenda:    []string{"Keynote"},
		Organizer: "Gopher Org",
		Tags:      []string{"go"},
	}

	t.Run("renders event with count and similar", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{
			event:   event,
			count:   7,
			similar: []*domain.Event{{Title: "RustConf", Slug: "rustconf"}},
		})

		rec := httptest.NewRecorder()
		pages.EventDetail(rec, newRequest("gophercon-2026"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Three days of Go")
		assert.Contains(t, body, "Join 7 people")
		assert.Contains(t, body, "RustConf")
	})

	t.Run("zero bookings invites the first booking", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{event: event})

		rec := httptest.NewRecorder()
		pages.EventDetail(rec, newRequest("gophercon-2026"))

		assert.Contains(t, rec.Body.String(), "Be the first to book your spot")
	})

	t.Run("fetch failure renders not found", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{getErr: errors.New("status 404")})

		rec := httptest.NewRecorder()
		pages.EventDetail(rec, newRequest("missing-event"))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Event not found")
	})

	t.Run("similar fetch failure renders not found", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{event: event, similarErr: errors.New("boom")})

		rec := httptest.NewRecorder()
		pages.EventDetail(rec, newRequest("gophercon-2026"))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("count failure degrades to zero", func(t *testing.T) {
		pages := newPages(t, &fakeAPI{event: event, countErr: errors.New("boom")})

		rec := httptest.NewRecorder()
		pages.EventDetail(rec, newRequest("gophercon-2026"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Be the first to book your spot")
	})
}

func TestAPIClient(t *testing.T) {
	t.Run("list events decodes the envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/events", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":"Events fetched successfully","events":[{"title":"GopherCon 2026","slug":"gophercon-2026"}]}`))
		}))
		defer srv.Close()

		client := NewAPIClient(srv.URL)
		events, err := client.ListEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "gophercon-2026", events[0].Slug)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewAPIClient(srv.URL)
		_, err := client.GetEvent(context.Background(), "gophercon-2026")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 503")
	})

	t.Run("booking count", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/events/gophercon-2026/bookings/count", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true,"message":"ok","count":12}`))
		}))
		defer srv.Close()

		client := NewAPIClient(srv.URL)
		count, err := client.CountBookings(context.Background(), "gophercon-2026")
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
	})
}

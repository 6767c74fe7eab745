package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"devevents/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages serves the rendered home and event detail pages.
type Pages struct {
	logger *slog.Logger
	api    API
	tmpl   *template.Template
}

func NewPages(logger *slog.Logger, api API) (*Pages, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{logger: logger, api: api, tmpl: tmpl}, nil
}

type homeData struct {
	Events   []*domain.Event
	Fallback bool
}

type eventData struct {
	Event    *domain.Event
	Bookings int64
	Similar  []*domain.Event
}

// Home renders the event listing. If the API is unreachable the page falls
// back to a built-in event set instead of failing.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	data := homeData{}
	events, err := p.api.ListEvents(r.Context())
	if err != nil {
		p.logger.WarnContext(r.Context(), "event listing unavailable, serving fallback", "err", err)
		data.Events = fallbackEvents
		data.Fallback = true
	} else {
		data.Events = events
	}
	p.render(w, http.StatusOK, "home.html", data)
}

// EventDetail renders one event with its booking count and similar events.
// Any fetch failure renders the not-found page rather than an error trace.
func (p *Pages) EventDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	event, err := p.api.GetEvent(r.Context(), slug)
	if err != nil {
		p.logger.WarnContext(r.Context(), "event page unavailable", "slug", slug, "err", err)
		p.NotFound(w, r)
		return
	}

	similar, err := p.api.ListSimilarEvents(r.Context(), slug)
	if err != nil {
		p.logger.WarnContext(r.Context(), "similar events unavailable", "slug", slug, "err", err)
		p.NotFound(w, r)
		return
	}

	// The count is decoration on the booking form; an error just hides it.
	bookings, err := p.api.CountBookings(r.Context(), slug)
	if err != nil {
		p.logger.WarnContext(r.Context(), "booking count unavailable", "slug", slug, "err", err)
		bookings = 0
	}

	p.render(w, http.StatusOK, "event.html", eventData{Event: event, Bookings: bookings, Similar: similar})
}

// NotFound renders the not-found page with status 404.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusNotFound, "notfound.html", nil)
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		p.logger.Error("template render failed", "template", name, "err", err)
	}
}

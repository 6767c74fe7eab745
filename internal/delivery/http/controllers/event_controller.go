package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"devevents/internal/domain"
)

// maxUploadBytes bounds the multipart form, image included.
const maxUploadBytes = 32 << 20

// EventListResponse is the body for GET /api/events.
// swagger:model EventListResponse
type EventListResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

// EventCreatedResponse is the body for a successful POST /api/events.
// swagger:model EventCreatedResponse
type EventCreatedResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// ErrorResponse is the error body for the events collection endpoints.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// EventResponse is the body for GET /api/events/{slug}. Error detail is
// populated only in development mode.
// swagger:model EventResponse
type EventResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Event   *domain.Event `json:"event,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// SimilarEventsResponse is the body for GET /api/events/{slug}/similar.
// swagger:model SimilarEventsResponse
type SimilarEventsResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type EventController struct {
	Logger      *slog.Logger
	Service     domain.EventService
	Development bool
}

func NewEventController(logger *slog.Logger, svc domain.EventService, development bool) *EventController {
	return &EventController{
		Logger:      logger,
		Service:     svc,
		Development: development,
	}
}

// ListEvents godoc
// @Summary List all events
// @Description Returns every event, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} controllers.ErrorResponse
// @Failure 503 {object} controllers.ErrorResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeJSON(w, statusFor(err), ErrorResponse{
			Message: "Failed to fetch events",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Message: "Events fetched successfully", Events: events})
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event from a multipart form. agenda and tags are JSON-encoded arrays; image is the banner file. The slug is derived from the title; date and time are normalized before persistence.
// @Tags events
// @Accept mpfd
// @Produce json
// @Param title formData string true "Event title"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date, normalized to YYYY-MM-DD"
// @Param time formData string true "Time, normalized to 24-hour HH:MM"
// @Param mode formData string true "One of online, offline, hybrid"
// @Param audience formData string true "Audience"
// @Param agenda formData string true "JSON-encoded array of agenda items"
// @Param organizer formData string true "Organizer"
// @Param tags formData string true "JSON-encoded array of tags"
// @Param image formData file true "Banner image"
// @Success 201 {object} controllers.EventCreatedResponse
// @Failure 400 {object} controllers.ErrorResponse "missingFields lists every absent field"
// @Failure 409 {object} controllers.ErrorResponse "slug already taken"
// @Failure 500 {object} controllers.ErrorResponse
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid form data", Error: err.Error()})
		return
	}

	agenda, err := parseJSONList(r.FormValue("agenda"), "agenda")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid form data", Error: err.Error()})
		return
	}
	tags, err := parseJSONList(r.FormValue("tags"), "tags")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid form data", Error: err.Error()})
		return
	}

	input := domain.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      agenda,
		Tags:        tags,
	}

	var image *domain.ImageUpload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image = &domain.ImageUpload{Filename: header.Filename, Content: file}
	}

	event, err := c.Service.CreateEvent(r.Context(), input, image)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			if len(verr.Fields) > 0 {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{
					Message:       fmt.Sprintf("Missing required fields: %s", strings.Join(verr.Fields, ", ")),
					MissingFields: verr.Fields,
				})
				return
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: verr.Message})
			return
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			writeJSON(w, http.StatusConflict, ErrorResponse{Message: conflict.Message})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeJSON(w, statusFor(err), ErrorResponse{
			Message: "Failed to create event",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	writeJSON(w, http.StatusCreated, EventCreatedResponse{Message: "Event created successfully", Event: event})
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the event with the given slug. The slug must be lowercase letters, numbers and hyphens only.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} controllers.EventResponse "missing or malformed slug"
// @Failure 404 {object} controllers.EventResponse
// @Failure 503 {object} controllers.EventResponse "database unreachable"
// @Failure 500 {object} controllers.EventResponse
// @Router /api/events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeSlugError(w, r, slug, err)
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{Success: true, Message: "Event fetched successfully", Event: event})
}

// ListSimilarEvents godoc
// @Summary List events similar to one event
// @Description Returns events sharing at least one tag with the named event, excluding the event itself. Unknown slugs yield an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.SimilarEventsResponse
// @Failure 400 {object} controllers.SimilarEventsResponse
// @Failure 503 {object} controllers.SimilarEventsResponse
// @Failure 500 {object} controllers.SimilarEventsResponse
// @Router /api/events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	events, err := c.Service.ListSimilarEvents(r.Context(), slug)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, SimilarEventsResponse{Success: false, Message: verr.Message})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeJSON(w, statusFor(err), SimilarEventsResponse{
			Success: false,
			Message: "Failed to fetch similar events",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	writeJSON(w, http.StatusOK, SimilarEventsResponse{Success: true, Message: "Similar events fetched successfully", Events: events})
}

func (c *EventController) writeSlugError(w http.ResponseWriter, r *http.Request, slug string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, EventResponse{Success: false, Message: verr.Message})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, EventResponse{
			Success: false,
			Message: fmt.Sprintf("Event with slug '%s' not found", slug),
		})
		return
	}
	var conn *domain.ConnectivityError
	if errors.As(err, &conn) {
		c.Logger.ErrorContext(r.Context(), "database unreachable", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, EventResponse{
			Success: false,
			Message: "Database connection error",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	writeJSON(w, http.StatusInternalServerError, EventResponse{
		Success: false,
		Message: "An unexpected error occurred while fetching the event",
		Error:   errorDetail(err, c.Development),
	})
}

// parseJSONList decodes a JSON-encoded string array from a form field.
// An empty field decodes to nil so the missing-field validation reports it.
func parseJSONList(raw, name string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%s must be a JSON-encoded array of strings", name)
	}
	return out, nil
}

package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"devevents/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings.
type CreateBookingRequest struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
}

// BookingResponse is the body for POST /api/bookings.
// swagger:model BookingResponse
type BookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// BookingCountResponse is the body for GET /api/events/{slug}/bookings/count.
// swagger:model BookingCountResponse
type BookingCountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
	Error   string `json:"error,omitempty"`
}

type BookingController struct {
	Logger      *slog.Logger
	Service     domain.BookingService
	Development bool
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService, development bool) *BookingController {
	return &BookingController{
		Logger:      logger,
		Service:     svc,
		Development: development,
	}
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Creates a booking for the given event. The email is normalized to trimmed lowercase and must have a basic email shape; the event must exist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Event id and email"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} controllers.BookingResponse "malformed email or unknown event"
// @Failure 503 {object} controllers.BookingResponse "database unreachable"
// @Failure 500 {object} controllers.BookingResponse
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, BookingResponse{Success: false, Message: "Invalid request body"})
		return
	}

	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, BookingResponse{Success: false, Message: verr.Message})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeJSON(w, statusFor(err), BookingResponse{
			Success: false,
			Message: "Failed to create booking",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	writeJSON(w, http.StatusCreated, BookingResponse{Success: true, Message: "Booking created successfully", Booking: booking})
}

// CountBookings godoc
// @Summary Count bookings for an event
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.BookingCountResponse
// @Failure 400 {object} controllers.BookingCountResponse
// @Failure 404 {object} controllers.BookingCountResponse
// @Failure 503 {object} controllers.BookingCountResponse
// @Failure 500 {object} controllers.BookingCountResponse
// @Router /api/events/{slug}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	count, err := c.Service.CountBookingsBySlug(r.Context(), slug)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, BookingCountResponse{Success: false, Message: verr.Message})
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, BookingCountResponse{Success: false, Message: "Event not found"})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		writeJSON(w, statusFor(err), BookingCountResponse{
			Success: false,
			Message: "Failed to count bookings",
			Error:   errorDetail(err, c.Development),
		})
		return
	}
	writeJSON(w, http.StatusOK, BookingCountResponse{Success: true, Message: "Booking count fetched successfully", Count: count})
}

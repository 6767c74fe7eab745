// Package http wires the controllers, the rendered pages, and the API
// documentation into one ServeMux.
package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/web"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	eventController *controllers.EventController,
	bookingController *controllers.BookingController,
	pages *web.Pages,
	healthz http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("GET /api/events", eventController.ListEvents)
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("GET /api/events/{slug}/similar", eventController.ListSimilarEvents)
	mux.HandleFunc("GET /api/events/{slug}/bookings/count", bookingController.CountBookings)
	mux.HandleFunc("POST /api/bookings", bookingController.CreateBooking)

	// Pages
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /events/{slug}", pages.EventDetail)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /healthz", healthz)

	return mux
}

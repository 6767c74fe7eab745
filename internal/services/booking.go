package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devevents/internal/domain"
)

// emailPattern is a basic shape check: something@something.something, no
// whitespace. Deliverability is not this layer's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type bookingService struct {
	bookings       domain.BookingRepository
	events         domain.EventRepository
	emails         domain.EmailService
	logger         *slog.Logger
	baseURL        string
	contextTimeout time.Duration
}

// NewBookingService returns a BookingService. emails may be nil, in which
// case no confirmation is sent.
func NewBookingService(bookings domain.BookingRepository, events domain.EventRepository, emails domain.EmailService, logger *slog.Logger, baseURL string, timeout time.Duration) domain.BookingService {
	return &bookingService{
		bookings:       bookings,
		events:         events,
		emails:         emails,
		logger:         logger,
		baseURL:        baseURL,
		contextTimeout: timeout,
	}
}

// CreateBooking validates the email shape, normalizes it to trimmed
// lowercase, checks the referenced event exists, and persists the booking.
// The confirmation email afterwards is best-effort and never fails the
// request.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError("please provide a valid email address")
	}

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(eventID))
	if err != nil {
		return nil, domain.NewValidationError("invalid event id")
	}
	event, err := s.events.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("referenced event does not exist")
		}
		return nil, fmt.Errorf("look up event: %w", err)
	}

	booking := &domain.Booking{EventID: event.ID, Email: email}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.emails != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:      booking.Email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			EventVenue: event.Venue,
			EventSlug:  event.Slug,
			BaseURL:    s.baseURL,
		}
		if err := s.emails.SendBookingConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "booking confirmation email failed",
				"event", event.Slug, "err", err)
		}
	}
	return booking, nil
}

// CountBookingsBySlug returns how many bookings the event identified by slug
// has. Unknown slugs surface domain.ErrNotFound.
func (s *bookingService) CountBookingsBySlug(ctx context.Context, slug string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateSlug(slug); err != nil {
		return 0, err
	}
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event by slug: %w", err)
	}
	count, err := s.bookings.CountByEvent(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

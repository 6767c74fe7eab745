package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookingService struct {
	createResult *domain.Booking
	createErr    error
	lastEventID  string
	lastEmail    string
	countResult  int64
	countErr     error
	lastSlug     string
}

func (f *fakeBookingService) CreateBooking(_ context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastEmail = email
	return f.createResult, f.createErr
}

func (f *fakeBookingService) CountBookingsBySlug(_ context.Context, slug string) (int64, error) {
	f.lastSlug = slug
	return f.countResult, f.countErr
}

func postBooking(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBookingController_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		eventID := primitive.NewObjectID()
		svc := &fakeBookingService{createResult: &domain.Booking{EventID: eventID, Email: "gopher@example.com"}}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":"`+eventID.Hex()+`","email":"Gopher@Example.com"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp BookingResponse
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "Booking created successfully", resp.Message)
		require.NotNil(t, resp.Booking)
		assert.Equal(t, "gopher@example.com", resp.Booking.Email)
		assert.Equal(t, "Gopher@Example.com", svc.lastEmail)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeBookingService{}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp BookingResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Invalid request body", resp.Message)
		assert.Empty(t, svc.lastEventID)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		ctrl := NewBookingController(testLogger, &fakeBookingService{}, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":"abc","email":"a@b.co","extra":true}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := &fakeBookingService{createErr: domain.NewValidationError("invalid email address")}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":"abc","email":"not-an-email"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp BookingResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "invalid email address", resp.Message)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := &fakeBookingService{createErr: domain.NewValidationError("referenced event does not exist")}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":"`+primitive.NewObjectID().Hex()+`","email":"a@b.co"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp BookingResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "referenced event does not exist", resp.Message)
	})

	t.Run("store unreachable", func(t *testing.T) {
		svc := &fakeBookingService{createErr: &domain.ConnectivityError{Err: errors.New("down")}}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CreateBooking(rec, postBooking(`{"eventId":"abc","email":"a@b.co"}`))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp BookingResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Failed to create booking", resp.Message)
		assert.Empty(t, resp.Error)
	})
}

func TestBookingController_CountBookings(t *testing.T) {
	newRequest := func(slug string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/events/"+url.PathEscape(slug)+"/bookings/count", nil)
		req.SetPathValue("slug", slug)
		return req
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookingService{countResult: 42}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CountBookings(rec, newRequest("gophercon-2026"))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp BookingCountResponse
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(42), resp.Count)
		assert.Equal(t, "gophercon-2026", svc.lastSlug)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := &fakeBookingService{countErr: domain.ErrNotFound}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CountBookings(rec, newRequest("missing-event"))

		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp BookingCountResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Event not found", resp.Message)
	})

	t.Run("bad slug", func(t *testing.T) {
		svc := &fakeBookingService{countErr: domain.NewValidationError("invalid slug format")}
		ctrl := NewBookingController(testLogger, svc, false)

		rec := httptest.NewRecorder()
		ctrl.CountBookings(rec, newRequest("Bad Slug"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking records one email signing up for one event. It references the
// event by id only and never copies event data.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"eventId"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BookingRepository defines storage for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

// BookingService defines the application operations over bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	CountBookingsBySlug(ctx context.Context, slug string) (int64, error)
}

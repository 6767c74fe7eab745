package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devevents/internal/database"
	"devevents/internal/domain"
)

type bookingRepository struct {
	colls CollectionResolver
}

func NewBookingRepository(colls CollectionResolver) domain.BookingRepository {
	return &bookingRepository{colls: colls}
}

// Create inserts the booking, setting ID and timestamps. Referential
// validation against the event happens in the service layer before this runs.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	coll, err := r.colls.Collection(ctx, database.BookingsCollection)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := coll.InsertOne(ctx, booking)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = id
	}
	return nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	coll, err := r.colls.Collection(ctx, database.BookingsCollection)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{"event_id": eventID})
}

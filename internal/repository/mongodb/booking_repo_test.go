package mongodb

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets id and timestamps", func(t *testing.T) {
		insertedID := primitive.NewObjectID()
		eventID := primitive.NewObjectID()
		coll := &fakeCollection{
			insertOne: func(document interface{}) (*mongo.InsertOneResult, error) {
				booking, ok := document.(*domain.Booking)
				require.True(t, ok)
				assert.Equal(t, eventID, booking.EventID)
				assert.False(t, booking.CreatedAt.IsZero())
				return &mongo.InsertOneResult{InsertedID: insertedID}, nil
			},
		}
		repo := NewBookingRepository(&fakeResolver{coll: coll})

		booking := &domain.Booking{EventID: eventID, Email: "dev@example.com"}
		require.NoError(t, repo.Create(ctx, booking))
		assert.Equal(t, insertedID, booking.ID)
	})

	t.Run("insert failure propagates", func(t *testing.T) {
		wantErr := errors.New("write unavailable")
		coll := &fakeCollection{
			insertOne: func(interface{}) (*mongo.InsertOneResult, error) { return nil, wantErr },
		}
		repo := NewBookingRepository(&fakeResolver{coll: coll})

		err := repo.Create(ctx, &domain.Booking{EventID: primitive.NewObjectID()})
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("connection failure propagates", func(t *testing.T) {
		wantErr := &domain.ConnectivityError{Err: errors.New("server selection timeout")}
		repo := NewBookingRepository(&fakeResolver{err: wantErr})

		err := repo.Create(ctx, &domain.Booking{EventID: primitive.NewObjectID()})
		require.ErrorIs(t, err, wantErr)
	})
}

func TestBookingRepository_CountByEvent(t *testing.T) {
	ctx := context.Background()
	eventID := primitive.NewObjectID()

	coll := &fakeCollection{
		countDocuments: func(filter interface{}) (int64, error) {
			assert.Equal(t, bson.M{"event_id": eventID}, filter)
			return 7, nil
		},
	}
	repo := NewBookingRepository(&fakeResolver{coll: coll})

	count, err := repo.CountByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devevents/internal/database"
	"devevents/internal/domain"
)

type eventRepository struct {
	colls CollectionResolver
}

func NewEventRepository(colls CollectionResolver) domain.EventRepository {
	return &eventRepository{colls: colls}
}

// Create inserts the event, setting ID and timestamps. A slug collision
// returns *domain.ConflictError; the pre-insert lookup is only a fast path,
// the unique index catches races.
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return err
	}

	err = coll.FindOne(ctx, bson.M{"slug": event.Slug}).Err()
	if err == nil {
		return &domain.ConflictError{Message: fmt.Sprintf("an event with slug %q already exists", event.Slug)}
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	res, err := coll.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Message: fmt.Sprintf("an event with slug %q already exists", event.Slug)}
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Event, error) {
	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return nil, err
	}
	event := &domain.Event{}
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return nil, err
	}
	event := &domain.Event{}
	if err := coll.FindOne(ctx, bson.M{"slug": slug}).Decode(event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// List returns all events, newest first.
func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListSimilarBySlug returns events sharing at least one tag with the named
// event, excluding the event itself. An unknown slug yields an empty slice,
// not an error.
func (r *eventRepository) ListSimilarBySlug(ctx context.Context, slug string) ([]*domain.Event, error) {
	event, err := r.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Event{}, nil
		}
		return nil, err
	}

	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"_id":  bson.M{"$ne": event.ID},
		"tags": bson.M{"$in": event.Tags},
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update replaces the stored event. A slug collision with another event
// returns *domain.ConflictError.
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	coll, err := r.colls.Collection(ctx, database.EventsCollection)
	if err != nil {
		return err
	}
	event.UpdatedAt = time.Now().UTC()
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Message: fmt.Sprintf("an event with slug %q already exists", event.Slug)}
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Package mongodb implements the domain repositories over MongoDB
// collections. Every operation resolves its collection through the shared
// connection cache, so the first request to touch the store triggers the
// single lazy dial.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devevents/internal/database"
)

// Collection is the subset of *mongo.Collection the repositories use.
// Narrow on purpose: tests fake it with NewSingleResultFromDocument and
// NewCursorFromDocuments instead of a live server.
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// CollectionResolver hands out collection handles, establishing the shared
// connection on first use.
type CollectionResolver interface {
	Collection(ctx context.Context, name string) (Collection, error)
}

type connectorResolver struct {
	connector *database.Connector
}

// NewResolver adapts the connection cache to a CollectionResolver.
func NewResolver(connector *database.Connector) CollectionResolver {
	return &connectorResolver{connector: connector}
}

func (r *connectorResolver) Collection(ctx context.Context, name string) (Collection, error) {
	coll, err := r.connector.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

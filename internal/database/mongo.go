// Package database owns the process-wide MongoDB connection. The connection
// is established lazily on first use and shared by every caller; concurrent
// first-time callers are collapsed into a single dial attempt.
package database

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"

	"devevents/internal/domain"
)

// Collection names and the env var naming kept in error messages.
const (
	EventsCollection   = "events"
	BookingsCollection = "bookings"

	uriEnvName = "MONGODB_URI"
)

// DialFunc establishes a client for the given URI. Injectable for tests.
type DialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

// Connector caches a single mongo client for the process lifetime. The zero
// connection state is recoverable: a failed dial leaves nothing cached, so
// the next Get retries.
type Connector struct {
	logger *slog.Logger
	uri    string
	dbName string
	dial   DialFunc

	group  singleflight.Group
	mu     sync.Mutex
	client *mongo.Client
}

// NewConnector returns a Connector for the given URI and database name.
// No I/O happens until the first Get.
func NewConnector(logger *slog.Logger, uri, dbName string) *Connector {
	return &Connector{
		logger: logger,
		uri:    uri,
		dbName: dbName,
		dial:   dialMongo,
	}
}

func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// Get returns the shared client, dialing it first if needed. Concurrent
// callers before any connection exists share one dial attempt and observe
// the same success or failure. Dial failures come back as
// *domain.ConnectivityError; a missing URI as *domain.ConfigurationError,
// checked on every call ahead of the cached fast path.
func (c *Connector) Get(ctx context.Context) (*mongo.Client, error) {
	if c.uri == "" {
		return nil, &domain.ConfigurationError{Missing: uriEnvName}
	}

	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client != nil {
		return client, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		c.mu.Lock()
		if c.client != nil {
			cached := c.client
			c.mu.Unlock()
			return cached, nil
		}
		c.mu.Unlock()

		client, err := c.dial(ctx, c.uri)
		if err != nil {
			return nil, &domain.ConnectivityError{Err: err}
		}
		c.mu.Lock()
		c.client = client
		c.mu.Unlock()
		c.logger.Info("mongodb connected", "db", c.dbName)
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Database returns the shared handle scoped to the configured database.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName), nil
}

// Collection returns a collection handle on the configured database.
func (c *Connector) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// EnsureIndexes creates the unique slug index on events and the event_id
// index on bookings. Safe to call repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}},
	})
	return err
}

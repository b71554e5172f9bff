package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"

	maxConnectAttempts = 5
)

type MongoConfig struct {
	Logger   *slog.Logger
	URI      string
	Database string
}

func (cfg *MongoConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.URI == "" {
		return errors.New("mongo URI is required")
	}
	if cfg.Database == "" {
		return errors.New("mongo database is required")
	}
	return nil
}

// MongoSource reads the operational collections from MongoDB.
type MongoSource struct {
	log    *slog.Logger
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoSource connects to MongoDB and verifies the connection with a ping,
// retrying with exponential backoff. A connection that cannot be established
// is fatal to the run.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if attempt > 0 {
			cfg.Logger.Warn("mongo ping failed, retrying", "attempt", attempt)
		}
		attempt++
		return struct{}{}, client.Ping(ctx, readpref.Primary())
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxConnectAttempts))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	cfg.Logger.Info("connected to mongo", "database", cfg.Database)

	return &MongoSource{
		log:    cfg.Logger,
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoSource) Users(ctx context.Context) ([]UserRecord, error) {
	var users []UserRecord
	if err := s.findAll(ctx, usersCollection, &users); err != nil {
		return nil, err
	}
	s.log.Debug("source: extracted users", "count", len(users))
	return users, nil
}

func (s *MongoSource) Products(ctx context.Context) ([]ProductRecord, error) {
	var products []ProductRecord
	if err := s.findAll(ctx, productsCollection, &products); err != nil {
		return nil, err
	}
	s.log.Debug("source: extracted products", "count", len(products))
	return products, nil
}

func (s *MongoSource) Orders(ctx context.Context) ([]OrderRecord, error) {
	var orders []OrderRecord
	if err := s.findAll(ctx, ordersCollection, &orders); err != nil {
		return nil, err
	}
	s.log.Debug("source: extracted orders", "count", len(orders))
	return orders, nil
}

func (s *MongoSource) findAll(ctx context.Context, collection string, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

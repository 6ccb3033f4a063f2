package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	bookingIndexes := []mongo.IndexModel{
		{
			// Capacity checks count active bookings for one slot.
			Keys: bson.D{
				{Key: "restaurant_id", Value: 1},
				{Key: "table_type_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}},
		},
		{
			// The no-show sweep scans upcoming bookings by start instant.
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "starts_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection("bookings").Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create bookings indexes: %w", err)
	}

	tableTypeIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "seat_count", Value: 1}},
		},
	}
	if _, err := s.database.Collection("table_types").Indexes().CreateMany(ctx, tableTypeIndexes); err != nil {
		return fmt.Errorf("failed to create table_types indexes: %w", err)
	}

	rulesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "restaurant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("reservation_rules").Indexes().CreateMany(ctx, rulesIndexes); err != nil {
		return fmt.Errorf("failed to create reservation_rules indexes: %w", err)
	}

	return nil
}

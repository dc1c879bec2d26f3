package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongoDatabase connects to MongoDB, verifies the connection and returns the named database.
func NewMongoDatabase(ctx context.Context, uri, name string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongo URI cannot be empty")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Successfully connected to MongoDB.", slog.String("database", name))
	return client, client.Database(name), nil
}

// CloseMongo disconnects the client.
func CloseMongo(ctx context.Context, client *mongo.Client, logger *slog.Logger) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Error disconnecting MongoDB", slog.String("error", err.Error()))
		return
	}
	logger.Info("MongoDB connection closed.")
}

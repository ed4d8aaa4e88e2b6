// Package database owns the MongoDB client for the bistro service.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bistrohq/bistro/config"
)

// Collection names used across the service.
const (
	ColUsers    = "user"
	ColMenu     = "menu"
	ColReviews  = "reviews"
	ColCarts    = "carts"
	ColPayments = "payments"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDB())
	return nil
}

// Collection returns a handle to a named collection on the connected database.
func Collection(name string) *mongo.Collection {
	return DB.Collection(name)
}

// Disconnect closes the client. Safe to call with a nil client.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

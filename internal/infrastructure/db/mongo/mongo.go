// Package mongo implements the portal's MongoDB repositories: session slots,
// local user accounts and the access audit trail.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials MongoDB, pings the primary and returns the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName("hospital-portal"))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// IndexEnsurer is implemented by repositories that need indexes.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every given repository.
func EnsureIndexes(ctx context.Context, repos ...IndexEnsurer) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

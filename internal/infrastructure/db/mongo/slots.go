package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hospital-ms/portal/internal/core/ports"
)

const collectionSlots = "session_slots"

// SlotStorage keeps one document per slot key. Expiry is enforced on read and
// by a TTL index on expires_at.
type SlotStorage struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSlotStorage(db *mongo.Database) *SlotStorage {
	return &SlotStorage{col: db.Collection(collectionSlots), now: time.Now}
}

type slotDoc struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

func (s *SlotStorage) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc slotDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrSlotEmpty
		}
		return nil, fmt.Errorf("slot get: %w", err)
	}
	if doc.ExpiresAt != nil && !s.now().Before(*doc.ExpiresAt) {
		return nil, ports.ErrSlotEmpty
	}
	return doc.Value, nil
}

// Set replaces the whole document in one upsert.
func (s *SlotStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := s.now().UTC()
	doc := slotDoc{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		doc.ExpiresAt = &exp
	}

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("slot set: %w", err)
	}
	return nil
}

func (s *SlotStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("slot delete: %w", err)
	}
	return nil
}

// EnsureIndexes creates the TTL index that reaps expired slots.
func (s *SlotStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

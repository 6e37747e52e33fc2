package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

const collectionAccessEvents = "access_events"

// AuditRepository implements ports.AccessAuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAccessEvents)}
}

var _ ports.AccessAuditRepository = (*AuditRepository)(nil)

// InsertAccessEvent appends a redirected navigation to access_events.
func (r *AuditRepository) InsertAccessEvent(ctx context.Context, event *domain.AccessEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"client_id":   event.ClientID,
		"path":        event.Path,
		"route":       event.Route.String(),
		"state":       event.State.String(),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.UserName != "" {
		doc["user_name"] = event.UserName
	}
	if event.Role.Valid() {
		doc["role"] = event.Role.String()
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes indexes events by client and time for per-client lookups.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

// internal/app/store/ledger/ledgerstore.go
package ledgerstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Entry represents one recorded API request. Entries are written by the
// ledger middleware and read from the admin dashboard to diagnose failed
// content updates.
type Entry struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`

	RequestID string `bson:"request_id" json:"request_id"` // generated UUID

	Method   string `bson:"method" json:"method"`
	Path     string `bson:"path" json:"path"`
	Query    string `bson:"query,omitempty" json:"query,omitempty"`
	RemoteIP string `bson:"remote_ip" json:"remote_ip"`

	// Section is the content section key when the request targeted a
	// section endpoint, empty otherwise.
	Section string `bson:"section,omitempty" json:"section,omitempty"`

	ActorType string `bson:"actor_type" json:"actor_type"` // "admin", "anonymous"

	RequestBodySize    int64  `bson:"request_body_size" json:"request_body_size"`
	RequestBodyPreview string `bson:"request_body_preview,omitempty" json:"request_body_preview,omitempty"`

	StatusCode   int    `bson:"status_code" json:"status_code"`
	ResponseSize int64  `bson:"response_size" json:"response_size"`
	ErrorClass   string `bson:"error_class,omitempty" json:"error_class,omitempty"` // "validation", "auth", "not_found", "internal"
	ErrorMessage string `bson:"error_message,omitempty" json:"error_message,omitempty"`

	DurationMs  float64   `bson:"duration_ms" json:"duration_ms"`
	StartedAt   time.Time `bson:"started_at" json:"started_at"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}

// Store provides ledger entry persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a new ledger store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ledger_entries")}
}

// Create inserts a new ledger entry.
func (s *Store) Create(ctx context.Context, entry Entry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// GetByRequestID retrieves a ledger entry by request ID.
func (s *Store) GetByRequestID(ctx context.Context, requestID string) (*Entry, error) {
	var entry Entry
	if err := s.c.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListFilter specifies criteria for listing ledger entries.
type ListFilter struct {
	Since      *time.Time
	Section    string
	ErrorClass string
	ErrorsOnly bool // status >= 400
}

// List returns the most recent entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter, limit int64) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := bson.M{}
	if filter.Since != nil {
		query["started_at"] = bson.M{"$gte": *filter.Since}
	}
	if filter.Section != "" {
		query["section"] = filter.Section
	}
	if filter.ErrorClass != "" {
		query["error_class"] = filter.ErrorClass
	}
	if filter.ErrorsOnly {
		query["status_code"] = bson.M{"$gte": 400}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching the filter.
func (s *Store) Count(ctx context.Context, filter ListFilter) (int64, error) {
	query := bson.M{}
	if filter.Since != nil {
		query["started_at"] = bson.M{"$gte": *filter.Since}
	}
	if filter.Section != "" {
		query["section"] = filter.Section
	}
	if filter.ErrorClass != "" {
		query["error_class"] = filter.ErrorClass
	}
	if filter.ErrorsOnly {
		query["status_code"] = bson.M{"$gte": 400}
	}
	return s.c.CountDocuments(ctx, query)
}

// Purge removes entries older than the cutoff. Returns the number removed.
// Called from the background task runner.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.c.DeleteMany(ctx, bson.M{"started_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

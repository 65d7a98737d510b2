// internal/app/store/chat/chatstore.go
package chatstore

import (
	"context"
	"time"

	"github.com/foliostack/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the chat_histories collection.
// One transcript per anonymous visitor, keyed by the client-generated
// visitor ID (unique index).
type Store struct {
	c *mongo.Collection
}

// New creates a new chat store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_histories")}
}

// Get returns the transcript for userID.
// Returns mongo.ErrNoDocuments if the visitor has no history yet.
func (s *Store) Get(ctx context.Context, userID string) (models.ChatHistory, error) {
	var h models.ChatHistory
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&h)
	return h, err
}

// Append adds messages to the visitor's transcript, creating it if absent.
// Returns the full updated transcript.
func (s *Store) Append(ctx context.Context, userID string, msgs ...models.ChatMessage) (models.ChatHistory, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": msgs}},
		"$set":  bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    userID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var h models.ChatHistory
	err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&h)
	return h, err
}

// Delete removes the visitor's transcript.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// DeleteStale removes transcripts not updated within ttl.
// Returns the number removed. Called from the background task runner.
func (s *Store) DeleteStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	res, err := s.c.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

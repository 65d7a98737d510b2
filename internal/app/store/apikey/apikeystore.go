// internal/app/store/apikey/apikeystore.go
package apikeystore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// APIKey represents an admin API key record. The key itself is never
// stored; only its bcrypt hash and a short display prefix.
type APIKey struct {
	ID         primitive.ObjectID `bson:"_id"`
	KeyHash    string             `bson:"key_hash"`
	KeyPrefix  string             `bson:"key_prefix"` // first 11 chars, for display and lookup
	Name       string             `bson:"name"`       // "Dashboard", "CI deploy"
	Status     string             `bson:"status"`     // "active", "revoked"
	LastUsedAt *time.Time         `bson:"last_used_at,omitempty"`
	UsageCount int64              `bson:"usage_count"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
	RevokedAt  *time.Time         `bson:"revoked_at,omitempty"`
}

// Status constants for API keys.
const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

var (
	// ErrNotFound is returned when an API key is not found.
	ErrNotFound = errors.New("api key not found")
	// ErrInvalidKey is returned when an API key is invalid or does not match.
	ErrInvalidKey = errors.New("invalid api key")
	// ErrDuplicateName is returned when a key with the same name already exists.
	ErrDuplicateName = errors.New("an api key with this name already exists")
)

// Store provides API key persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a new API key store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("api_keys")}
}

// GenerateKey generates a new cryptographically secure API key.
// Returns the full key (shown once to the caller) and its display prefix.
func GenerateKey() (fullKey, prefix string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	fullKey = "fk_" + hex.EncodeToString(bytes)
	prefix = fullKey[:11] // "fk_" + 8 chars
	return fullKey, prefix, nil
}

func hashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CreateResult contains the created record and the full key value,
// which is only available at creation time.
type CreateResult struct {
	Key     APIKey
	FullKey string
}

// Create creates a new API key and returns the full key value (only shown once).
func (s *Store) Create(ctx context.Context, name string) (CreateResult, error) {
	fullKey, prefix, err := GenerateKey()
	if err != nil {
		return CreateResult{}, err
	}

	keyHash, err := hashKey(fullKey)
	if err != nil {
		return CreateResult{}, err
	}

	now := time.Now().UTC()
	key := APIKey{
		ID:        primitive.NewObjectID(),
		KeyHash:   keyHash,
		KeyPrefix: prefix,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, key); err != nil {
		if isDuplicateKeyError(err) {
			return CreateResult{}, ErrDuplicateName
		}
		return CreateResult{}, err
	}

	return CreateResult{Key: key, FullKey: fullKey}, nil
}

func isDuplicateKeyError(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// Validate checks whether the provided key matches an active stored key
// and returns its record. Updates last_used_at and usage_count on a match.
func (s *Store) Validate(ctx context.Context, providedKey string) (*APIKey, error) {
	// Prefix narrows the candidate set so we bcrypt-compare at most a
	// handful of hashes per request.
	if len(providedKey) < 11 {
		return nil, ErrInvalidKey
	}
	prefix := providedKey[:11]

	cur, err := s.c.Find(ctx, bson.M{
		"key_prefix": prefix,
		"status":     StatusActive,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var matched *APIKey
	for cur.Next(ctx) {
		var key APIKey
		if err := cur.Decode(&key); err != nil {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(providedKey)); err == nil {
			matched = &key
			break
		}
	}

	if matched == nil {
		return nil, ErrInvalidKey
	}

	// Best-effort usage tracking; the key is valid even if this write fails.
	now := time.Now().UTC()
	_, _ = s.c.UpdateOne(ctx, bson.M{"_id": matched.ID}, bson.M{
		"$set": bson.M{"last_used_at": now, "updated_at": now},
		"$inc": bson.M{"usage_count": 1},
	})

	return matched, nil
}

// Check reports whether the provided key is a valid active stored key.
// It satisfies the auth middleware's KeyValidator interface.
func (s *Store) Check(ctx context.Context, providedKey string) error {
	_, err := s.Validate(ctx, providedKey)
	return err
}

// List returns all API keys, newest first.
func (s *Store) List(ctx context.Context) ([]APIKey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var keys []APIKey
	if err := cur.All(ctx, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Revoke marks an active API key as revoked.
func (s *Store) Revoke(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	result, err := s.c.UpdateOne(ctx, bson.M{
		"_id":    id,
		"status": StatusActive,
	}, bson.M{
		"$set": bson.M{
			"status":     StatusRevoked,
			"revoked_at": now,
			"updated_at": now,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently deletes an API key.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive returns the number of active API keys.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": StatusActive})
}

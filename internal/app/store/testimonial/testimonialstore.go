// internal/app/store/testimonial/testimonialstore.go
package testimonialstore

import (
	"context"
	"time"

	"github.com/foliostack/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the testimonials collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new testimonial store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("testimonials")}
}

// Create inserts a new testimonial. Submissions always start pending.
func (s *Store) Create(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Status = models.TestimonialPending
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Testimonial{}, err
	}
	return t, nil
}

// GetByID returns one testimonial.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Testimonial, error) {
	var t models.Testimonial
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

// ListApproved returns approved testimonials, newest first. This is the
// public read path.
func (s *Store) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	return s.list(ctx, bson.M{"status": models.TestimonialApproved})
}

// ListAll returns the full moderation queue, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Testimonial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a testimonial to the given moderation status and returns
// the updated document.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Testimonial, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Testimonial
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}, opts).Decode(&t)
	return t, err
}

// Delete removes a testimonial.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

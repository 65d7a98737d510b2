// Package revisionstore persists per-section revision snapshots.
//
// Every applied section update first records the pre-update field values here,
// tagged with a monotonic sequence number. Rollback copies a snapshot's fields
// back into the live document and removes the snapshot, the same
// undo-by-resubmission behavior the admin panel exposes, but durable across
// reloads and visible to every admin.
package revisionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for revision snapshots.
const CollectionName = "section_revisions"

// Revision is one saved snapshot of a section's fields.
type Revision struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Section  string             `bson:"section" json:"section"`
	Seq      int64              `bson:"seq" json:"seq"`
	Fields   bson.M             `bson:"fields" json:"fields"`
	SavedAt  time.Time          `bson:"saved_at" json:"saved_at"`
	SavedVia string             `bson:"saved_via,omitempty" json:"saved_via,omitempty"` // "update" or "rollback"
}

// Store provides access to the section_revisions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new revision store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Append records a snapshot for section with the next sequence number.
// Sequence numbers are per-section and strictly increasing; the unique
// (section, seq) index turns a lost race into a retryable duplicate-key
// error rather than a gap or collision.
func (s *Store) Append(ctx context.Context, section string, fields bson.M, via string) (Revision, error) {
	rev := Revision{
		ID:       primitive.NewObjectID(),
		Section:  section,
		Fields:   fields,
		SavedAt:  time.Now().UTC(),
		SavedVia: via,
	}

	// Retry once on a sequence collision; concurrent admin updates to the
	// same section are rare.
	for attempt := 0; attempt < 2; attempt++ {
		seq, err := s.nextSeq(ctx, section)
		if err != nil {
			return Revision{}, err
		}
		rev.Seq = seq
		_, err = s.c.InsertOne(ctx, rev)
		if err == nil {
			return rev, nil
		}
		if !mongo.IsDuplicateKeyError(err) || attempt == 1 {
			return Revision{}, err
		}
	}
	return rev, nil
}

// nextSeq returns one past the highest sequence number stored for section.
func (s *Store) nextSeq(ctx context.Context, section string) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "seq", Value: -1}}).
		SetProjection(bson.M{"seq": 1})

	var latest struct {
		Seq int64 `bson:"seq"`
	}
	err := s.c.FindOne(ctx, bson.M{"section": section}, opts).Decode(&latest)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Seq + 1, nil
}

// List returns the revisions for section, newest first, up to limit.
func (s *Store) List(ctx context.Context, section string, limit int64) ([]Revision, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"section": section}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var revs []Revision
	if err := cur.All(ctx, &revs); err != nil {
		return nil, err
	}
	return revs, nil
}

// Latest returns the most recent revision for section.
// Returns mongo.ErrNoDocuments if no revision exists.
func (s *Store) Latest(ctx context.Context, section string) (Revision, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}})
	var rev Revision
	err := s.c.FindOne(ctx, bson.M{"section": section}, opts).Decode(&rev)
	return rev, err
}

// GetBySeq returns the revision with the given sequence number for section.
func (s *Store) GetBySeq(ctx context.Context, section string, seq int64) (Revision, error) {
	var rev Revision
	err := s.c.FindOne(ctx, bson.M{"section": section, "seq": seq}).Decode(&rev)
	return rev, err
}

// Delete removes one revision. Rollback consumes the snapshot it restored.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteSection removes every revision for section (used by factory reset).
func (s *Store) DeleteSection(ctx context.Context, section string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"section": section})
	return err
}

// Trim removes revisions beyond keep for section, oldest first.
// Returns the number removed.
func (s *Store) Trim(ctx context.Context, section string, keep int64) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	// Find the cutoff: the seq of the keep-th newest revision.
	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: -1}}).
		SetSkip(keep).
		SetLimit(1).
		SetProjection(bson.M{"seq": 1})

	cur, err := s.c.Find(ctx, bson.M{"section": section}, opts)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return 0, nil
	}
	var cutoff struct {
		Seq int64 `bson:"seq"`
	}
	if err := cur.Decode(&cutoff); err != nil {
		return 0, err
	}

	res, err := s.c.DeleteMany(ctx, bson.M{
		"section": section,
		"seq":     bson.M{"$lte": cutoff.Seq},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

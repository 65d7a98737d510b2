// Package sectionkit implements the singleton-document operations shared by
// every content section: lazy get-or-initialize, partial update, visibility
// toggle, and factory reset.
//
// Each section collection holds exactly one live document, keyed by a constant
// singleton marker with a unique index (see indexes.EnsureAll). Creation goes
// through an atomic upsert, so concurrent first reads cannot produce
// duplicates.
package sectionkit

import (
	"context"
	"time"

	"github.com/foliostack/folio/internal/app/system/htmlsanitize"
	"github.com/foliostack/folio/internal/domain/sections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonFilter matches the one live document in a section collection.
var singletonFilter = bson.M{"singleton": true}

// Kit operates on one section's singleton document.
type Kit struct {
	def sections.Definition
	c   *mongo.Collection
}

// New creates a kit for the given section definition.
func New(db *mongo.Database, def sections.Definition) *Kit {
	return &Kit{def: def, c: db.Collection(def.Collection)}
}

// Definition returns the section definition this kit operates on.
func (k *Kit) Definition() sections.Definition {
	return k.def
}

// defaultDoc builds a complete default document including the singleton
// marker, visibility flag, and timestamps.
func (k *Kit) defaultDoc(now time.Time) bson.M {
	doc := k.def.Defaults()
	doc["singleton"] = true
	doc["is_visible"] = true
	doc["created_at"] = now
	doc["updated_at"] = now
	return doc
}

// Get returns the section's singleton document, creating it from defaults if
// absent. A read may therefore perform a write, but the upsert is atomic: two
// concurrent Gets on an empty collection yield the same single document.
func (k *Kit) Get(ctx context.Context) (bson.M, error) {
	now := time.Now().UTC()
	insert := k.defaultDoc(now)
	insert["_id"] = primitive.NewObjectID()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := k.c.FindOneAndUpdate(ctx, singletonFilter, bson.M{"$setOnInsert": insert}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Update applies a partial update and returns the full updated document.
//
// Only fields listed in the section definition are applied; unknown fields are
// ignored. A missing field leaves the stored value unchanged, and so does an
// empty string: the admin forms submit all inputs, and a blank input means
// "keep what is there". Rich-text fields are sanitized before storage.
func (k *Kit) Update(ctx context.Context, partial bson.M) (bson.M, error) {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	for _, field := range k.def.Fields {
		v, ok := partial[field]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			if s == "" {
				continue
			}
			if k.def.IsRichText(field) {
				v = htmlsanitize.Sanitize(s)
			}
		}
		set[field] = v
	}

	// Defaults only apply on insert; keys being set now must not collide.
	insert := k.defaultDoc(now)
	insert["_id"] = primitive.NewObjectID()
	for field := range set {
		delete(insert, field)
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := k.c.FindOneAndUpdate(ctx, singletonFilter, bson.M{
		"$set":         set,
		"$setOnInsert": insert,
	}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ToggleVisibility flips the is_visible flag and returns the updated document
// and the new value. All other fields are left untouched.
func (k *Kit) ToggleVisibility(ctx context.Context) (bson.M, bool, error) {
	current, err := k.Get(ctx)
	if err != nil {
		return nil, false, err
	}

	visible, _ := current["is_visible"].(bool)
	next := !visible

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bson.M
	err = k.c.FindOneAndUpdate(ctx, singletonFilter, bson.M{
		"$set": bson.M{
			"is_visible": next,
			"updated_at": time.Now().UTC(),
		},
	}, opts).Decode(&doc)
	if err != nil {
		return nil, false, err
	}
	return doc, next, nil
}

// Visible reports whether the section is currently visible, materializing the
// document if needed.
func (k *Kit) Visible(ctx context.Context) (bool, error) {
	doc, err := k.Get(ctx)
	if err != nil {
		return false, err
	}
	visible, _ := doc["is_visible"].(bool)
	return visible, nil
}

// Reset restores the section to factory defaults. It removes every document in
// the collection, including any duplicates created before the unique index
// existed, and inserts one fresh default document.
func (k *Kit) Reset(ctx context.Context) (bson.M, error) {
	if _, err := k.c.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := k.defaultDoc(now)
	doc["_id"] = primitive.NewObjectID()

	if _, err := k.c.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Restore overwrites the updatable fields of the current document with the
// values from snapshot, ignoring anything that is not an updatable field.
// It is used by revision rollback. Returns the full updated document.
func (k *Kit) Restore(ctx context.Context, snapshot bson.M) (bson.M, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for _, field := range k.def.Fields {
		if v, ok := snapshot[field]; ok {
			set[field] = v
		}
	}
	if v, ok := snapshot["is_visible"]; ok {
		set["is_visible"] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bson.M
	err := k.c.FindOneAndUpdate(ctx, singletonFilter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/foliostack/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the site_settings collection.
// Folio uses a singleton settings document (only one per site).
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

// Get returns the site settings.
// If no settings document exists, returns the factory defaults.
func (s *Store) Get(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	filter := bson.M{"singleton": true}
	err := s.c.FindOne(ctx, filter).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

// Save replaces the stored settings with the given document.
// Uses upsert so it works whether settings exist or not.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings) error {
	now := time.Now().UTC()
	settings.UpdatedAt = &now

	filter := bson.M{"singleton": true}
	update := bson.M{
		"$set": bson.M{
			"singleton":   true,
			"site_info":   settings.SiteInfo,
			"seo":         settings.SEO,
			"performance": settings.Performance,
			"maintenance": settings.Maintenance,
			"updated_at":  settings.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Reset restores the factory default settings.
func (s *Store) Reset(ctx context.Context) (models.SiteSettings, error) {
	defaults := models.DefaultSiteSettings()
	if err := s.Save(ctx, defaults); err != nil {
		return models.SiteSettings{}, err
	}
	return s.Get(ctx)
}

// Exists checks if a settings document has been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"singleton": true})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

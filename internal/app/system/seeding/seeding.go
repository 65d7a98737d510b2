// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	settingsstore "github.com/foliostack/folio/internal/app/store/settings"
	"github.com/foliostack/folio/internal/app/system/sectionkit"
	"github.com/foliostack/folio/internal/domain/sections"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll materializes default content on first boot so the public site
// renders immediately. Sections that already exist are left alone; Get is
// a get-or-create, so seeding is idempotent.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, def := range sections.All() {
		kit := sectionkit.New(db, def)
		if _, err := kit.Get(ctx); err != nil {
			logger.Error("failed to seed section",
				zap.String("section", def.Key),
				zap.Error(err))
			return err
		}
		logger.Debug("section ready", zap.String("section", def.Key))
	}

	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}

	logger.Info("default content seeded", zap.Int("sections", len(sections.All())))
	return nil
}

// seedSettings writes the default site settings if none have been saved.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)

	exists, err := store.Exists(ctx)
	if err != nil {
		logger.Error("failed to check site settings", zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	if _, err := store.Reset(ctx); err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return err
	}
	logger.Info("seeded default site settings")
	return nil
}

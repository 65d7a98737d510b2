// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foliostack/folio/internal/domain/sections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureSections(ctx, db); err != nil {
		problems = append(problems, "sections: "+err.Error())
	}
	if err := ensureSiteSettings(ctx, db); err != nil {
		problems = append(problems, "site_settings: "+err.Error())
	}
	if err := ensureSectionRevisions(ctx, db); err != nil {
		problems = append(problems, "section_revisions: "+err.Error())
	}
	if err := ensureTestimonials(ctx, db); err != nil {
		problems = append(problems, "testimonials: "+err.Error())
	}
	if err := ensureChatHistories(ctx, db); err != nil {
		problems = append(problems, "chat_histories: "+err.Error())
	}
	if err := ensureLedgerEntries(ctx, db); err != nil {
		problems = append(problems, "ledger_entries: "+err.Error())
	}
	if err := ensureAPIKeys(ctx, db); err != nil {
		problems = append(problems, "api_keys: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return strings.Contains(err.Error(), "E11000")
}

func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// ensureSections puts a unique index on the singleton marker of every
// section collection. This is what makes duplicate section documents
// impossible even under concurrent get-or-create races.
func ensureSections(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, def := range sections.All() {
		c := db.Collection(def.Collection)
		err := ensureIndexSet(ctx, c, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "singleton", Value: 1},
				},
				Options: options.Index().
					SetUnique(true).
					SetName("uniq_" + def.Key + "_singleton"),
			},
		})
		if err != nil {
			problems = append(problems, def.Key+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureSiteSettings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("site_settings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique singleton - only one settings document
		{
			Keys: bson.D{
				{Key: "singleton", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_sitesettings_singleton"),
		},
	})
}

func ensureSectionRevisions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("section_revisions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One sequence number per section; Append relies on this to
		// detect concurrent writers.
		{
			Keys: bson.D{
				{Key: "section", Value: 1},
				{Key: "seq", Value: -1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_revision_section_seq"),
		},
		// Trim and list by age
		{
			Keys: bson.D{
				{Key: "section", Value: 1},
				{Key: "saved_at", Value: -1},
			},
			Options: options.Index().SetName("idx_revision_section_saved"),
		},
	})
}

func ensureTestimonials(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("testimonials")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Public read path: approved, newest first
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_testimonial_status_created"),
		},
	})
}

func ensureChatHistories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("chat_histories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One transcript per visitor
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_chat_user"),
		},
		// Stale-transcript cleanup
		{
			Keys: bson.D{
				{Key: "updated_at", Value: 1},
			},
			Options: options.Index().SetName("idx_chat_updated"),
		},
	})
}

func ensureLedgerEntries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("ledger_entries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Recent-first listing and purge
		{
			Keys: bson.D{
				{Key: "started_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ledger_started"),
		},
		// Lookup by request ID
		{
			Keys: bson.D{
				{Key: "request_id", Value: 1},
			},
			Options: options.Index().SetName("idx_ledger_request_id"),
		},
		// Error triage per section
		{
			Keys: bson.D{
				{Key: "section", Value: 1},
				{Key: "started_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ledger_section_started"),
		},
		{
			Keys: bson.D{
				{Key: "status_code", Value: 1},
				{Key: "started_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ledger_status_started"),
		},
	})
}

func ensureAPIKeys(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("api_keys")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique name per API key
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_apikey_name"),
		},
		// Lookup by key prefix for validation
		{
			Keys: bson.D{
				{Key: "key_prefix", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_apikey_prefix_status"),
		},
	})
}

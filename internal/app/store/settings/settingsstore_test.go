package settingsstore

import (
	"testing"

	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/testutil"
)

func TestStore_Get_ReturnsDefaultsWhenEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	defaults := models.DefaultSiteSettings()
	if settings.SiteInfo.Title != defaults.SiteInfo.Title {
		t.Errorf("Title = %v, want default %v", settings.SiteInfo.Title, defaults.SiteInfo.Title)
	}
	if !settings.Performance.LazyLoadImages {
		t.Error("default performance settings not returned")
	}

	// Reading defaults must not create a document.
	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Get() on empty collection should not persist anything")
	}
}

func TestStore_Save_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settings := models.DefaultSiteSettings()
	settings.SiteInfo.Title = "Custom Title"
	settings.Maintenance.Enabled = true
	settings.Maintenance.Message = "Back at noon"

	if err := store.Save(ctx, settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteInfo.Title != "Custom Title" {
		t.Errorf("Title = %v, want Custom Title", got.SiteInfo.Title)
	}
	if !got.Maintenance.Enabled || got.Maintenance.Message != "Back at noon" {
		t.Errorf("Maintenance = %+v, want enabled with message", got.Maintenance)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be set on save")
	}
}

func TestStore_Save_Singleton(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.DefaultSiteSettings()
	first.SiteInfo.Title = "First"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := models.DefaultSiteSettings()
	second.SiteInfo.Title = "Second"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteInfo.Title != "Second" {
		t.Errorf("Title = %v, want Second", got.SiteInfo.Title)
	}

	count, err := db.Collection("site_settings").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if count != 1 {
		t.Errorf("settings documents = %d, want 1", count)
	}
}

func TestStore_Reset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	custom := models.DefaultSiteSettings()
	custom.SiteInfo.Title = "Customized"
	if err := store.Save(ctx, custom); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	defaults := models.DefaultSiteSettings()
	if got.SiteInfo.Title != defaults.SiteInfo.Title {
		t.Errorf("Title after reset = %v, want default %v", got.SiteInfo.Title, defaults.SiteInfo.Title)
	}
}

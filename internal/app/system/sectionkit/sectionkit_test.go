package sectionkit

import (
	"strings"
	"testing"

	"github.com/foliostack/folio/internal/domain/sections"
	"github.com/foliostack/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func kitFor(t *testing.T, key string) *Kit {
	t.Helper()
	db := testutil.SetupTestDB(t)
	def, ok := sections.Lookup(key)
	if !ok {
		t.Fatalf("section %q not registered", key)
	}
	return New(db, def)
}

func TestKit_Get_CreatesFromDefaults(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc, err := kit.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if doc["singleton"] != true {
		t.Error("document missing singleton marker")
	}
	if doc["is_visible"] != true {
		t.Error("new section should be visible")
	}
	if doc["created_at"] == nil || doc["updated_at"] == nil {
		t.Error("timestamps not set")
	}

	defaults := kit.Definition().Defaults()
	for field, want := range defaults {
		if _, ok := defaults[field].(string); !ok {
			continue
		}
		if doc[field] != want {
			t.Errorf("field %q = %v, want default %v", field, doc[field], want)
		}
	}
}

func TestKit_Get_Idempotent(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := kit.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := kit.Get(ctx)
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}

	if first["_id"] != second["_id"] {
		t.Error("repeated Get() returned different documents")
	}
}

func TestKit_Update_PartialMerge(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before, err := kit.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	doc, err := kit.Update(ctx, bson.M{"title": "Platform Engineer"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if doc["title"] != "Platform Engineer" {
		t.Errorf("title = %v, want Platform Engineer", doc["title"])
	}
	// Fields absent from the partial update keep their stored values.
	if doc["name"] != before["name"] {
		t.Errorf("name changed on unrelated update: %v -> %v", before["name"], doc["name"])
	}
}

func TestKit_Update_EmptyStringKeepsStored(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := kit.Update(ctx, bson.M{"title": "Original Title"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// Admin forms submit every input; blank means "keep what is there".
	doc, err := kit.Update(ctx, bson.M{"title": "", "subtitle": "New Subtitle"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if doc["title"] != "Original Title" {
		t.Errorf("title = %v, want Original Title", doc["title"])
	}
	if doc["subtitle"] != "New Subtitle" {
		t.Errorf("subtitle = %v, want New Subtitle", doc["subtitle"])
	}
}

func TestKit_Update_IgnoresUnknownFields(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc, err := kit.Update(ctx, bson.M{
		"title":       "Kept",
		"not_a_field": "dropped",
		"is_visible":  false, // visibility changes go through ToggleVisibility
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, ok := doc["not_a_field"]; ok {
		t.Error("unknown field was stored")
	}
	if doc["is_visible"] != true {
		t.Error("update must not change visibility")
	}
	if doc["title"] != "Kept" {
		t.Errorf("title = %v, want Kept", doc["title"])
	}
}

func TestKit_Update_SanitizesRichText(t *testing.T) {
	kit := kitFor(t, sections.KeyAbout)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc, err := kit.Update(ctx, bson.M{
		"body": `<p>Hi</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	body, _ := doc["body"].(string)
	if strings.Contains(body, "<script>") {
		t.Errorf("script tag survived sanitization: %q", body)
	}
	if !strings.Contains(body, "<p>Hi</p>") {
		t.Errorf("allowed markup was stripped: %q", body)
	}
}

func TestKit_ToggleVisibility(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kit.Update(ctx, bson.M{"title": "Stays"})

	doc, visible, err := kit.ToggleVisibility(ctx)
	if err != nil {
		t.Fatalf("ToggleVisibility() error = %v", err)
	}
	if visible {
		t.Error("first toggle should hide the section")
	}
	if doc["title"] != "Stays" {
		t.Error("toggle must not change content fields")
	}

	_, visible, err = kit.ToggleVisibility(ctx)
	if err != nil {
		t.Fatalf("second ToggleVisibility() error = %v", err)
	}
	if !visible {
		t.Error("double toggle should restore visibility")
	}

	got, err := kit.Visible(ctx)
	if err != nil {
		t.Fatalf("Visible() error = %v", err)
	}
	if !got {
		t.Error("Visible() = false after double toggle")
	}
}

func TestKit_Reset_RestoresDefaults(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kit.Update(ctx, bson.M{"title": "Changed"})
	kit.ToggleVisibility(ctx)

	doc, err := kit.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	defaults := kit.Definition().Defaults()
	if doc["title"] != defaults["title"] {
		t.Errorf("title = %v, want default %v", doc["title"], defaults["title"])
	}
	if doc["is_visible"] != true {
		t.Error("reset section should be visible")
	}

	// Exactly one document remains.
	after, err := kit.Get(ctx)
	if err != nil {
		t.Fatalf("Get() after reset error = %v", err)
	}
	if after["title"] != defaults["title"] {
		t.Errorf("persisted title = %v, want default", after["title"])
	}
}

func TestKit_Restore(t *testing.T) {
	kit := kitFor(t, sections.KeyHome)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kit.Update(ctx, bson.M{"title": "Current"})

	doc, err := kit.Restore(ctx, bson.M{
		"title":       "Snapshot Title",
		"not_a_field": "dropped",
	})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if doc["title"] != "Snapshot Title" {
		t.Errorf("title = %v, want Snapshot Title", doc["title"])
	}
	if _, ok := doc["not_a_field"]; ok {
		t.Error("non-field snapshot key was stored")
	}
}

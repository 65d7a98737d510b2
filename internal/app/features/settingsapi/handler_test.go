package settingsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/app/system/sectionkit"
	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/domain/sections"
	"github.com/foliostack/folio/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), events.NewHub())

	r := chi.NewRouter()
	MountPublic(r, h)
	MountAdmin(r, h)
	return r, db
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Get_IncludesDerivedVisibility(t *testing.T) {
	router, db := newTestRouter(t)

	// Hide one section directly; the settings read must reflect it.
	def, _ := sections.Lookup(sections.KeyBlog)
	if _, _, err := sectionkit.New(db, def).ToggleVisibility(testContext(t)); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /settings status = %d", rec.Code)
	}

	var resp struct {
		SiteInfo          models.SiteInfo `json:"site_info"`
		SectionVisibility map[string]bool `json:"section_visibility"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if resp.SiteInfo.Title == "" {
		t.Error("settings defaults not returned")
	}
	if len(resp.SectionVisibility) != len(sections.All()) {
		t.Errorf("visibility map has %d entries, want %d", len(resp.SectionVisibility), len(sections.All()))
	}
	if resp.SectionVisibility[sections.KeyBlog] {
		t.Error("hidden section reported visible")
	}
	if !resp.SectionVisibility[sections.KeyHome] {
		t.Error("untouched section reported hidden")
	}
}

func TestHandler_Update_PartialMerge(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/settings", map[string]any{
		"site_info": map[string]any{
			"title":        "New Title",
			"tagline":      "New Tagline",
			"contact_mail": "new@example.com",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /settings status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var saved models.SiteSettings
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if saved.SiteInfo.Title != "New Title" {
		t.Errorf("Title = %v, want New Title", saved.SiteInfo.Title)
	}
	// Groups absent from the body keep their defaults.
	defaults := models.DefaultSiteSettings()
	if saved.SEO.MetaTitle != defaults.SEO.MetaTitle {
		t.Errorf("SEO changed by unrelated update: %v", saved.SEO.MetaTitle)
	}
}

func TestHandler_Update_RejectsVisibilityKey(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/settings", map[string]any{
		"section_visibility": map[string]bool{"home": false},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT with section_visibility status = %d, want 400", rec.Code)
	}
}

func TestHandler_ResetAll(t *testing.T) {
	router, db := newTestRouter(t)

	// Dirty some state first.
	doJSON(t, router, http.MethodPut, "/settings", map[string]any{
		"site_info": map[string]any{"title": "Dirty"},
	})
	def, _ := sections.Lookup(sections.KeyHome)
	if _, err := sectionkit.New(db, def).Update(testContext(t), bson.M{"title": "Dirty"}); err != nil {
		t.Fatalf("section update failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/settings/reset-all", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST reset-all status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Failed   int `json:"failed"`
		Outcomes []struct {
			Section string `json:"section"`
			OK      bool   `json:"ok"`
		} `json:"outcomes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if resp.Failed != 0 {
		t.Errorf("failed = %d, want 0", resp.Failed)
	}
	// One outcome for the settings aggregate plus one per section.
	if len(resp.Outcomes) != len(sections.All())+1 {
		t.Errorf("outcomes = %d, want %d", len(resp.Outcomes), len(sections.All())+1)
	}
	for _, o := range resp.Outcomes {
		if !o.OK {
			t.Errorf("outcome for %q not ok", o.Section)
		}
	}

	// The content really went back to defaults.
	doc, err := sectionkit.New(db, def).Get(testContext(t))
	if err != nil {
		t.Fatalf("Get() after reset error = %v", err)
	}
	if doc["title"] == "Dirty" {
		t.Error("section content survived reset-all")
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	return ctx
}

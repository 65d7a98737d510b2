package testimonialapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), events.NewHub())

	r := chi.NewRouter()
	MountPublic(r, h)
	MountAdmin(r, h)
	return r
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

func submit(t *testing.T, router http.Handler, author, quote string) models.Testimonial {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/testimonials", map[string]any{
		"author": author,
		"quote":  quote,
		"rating": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.Testimonial
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return created
}

func TestHandler_Submit_StartsPending(t *testing.T) {
	router := newTestRouter(t)

	created := submit(t, router, "Alex Chen", "Superb collaboration.")
	if created.Status != models.TestimonialPending {
		t.Errorf("Status = %v, want pending", created.Status)
	}

	// Pending submissions are invisible on the public list.
	rec := doJSON(t, router, http.MethodGet, "/testimonials", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /testimonials status = %d", rec.Code)
	}
	var list []models.Testimonial
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("public list = %d entries, want 0 before approval", len(list))
	}
}

func TestHandler_Submit_Validation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing author", map[string]any{"quote": "q"}},
		{"missing quote", map[string]any{"author": "a"}},
		{"whitespace only", map[string]any{"author": "  ", "quote": "q"}},
		{"rating too high", map[string]any{"author": "a", "quote": "q", "rating": 6}},
		{"rating negative", map[string]any{"author": "a", "quote": "q", "rating": -1}},
		{"quote too long", map[string]any{"author": "a", "quote": strings.Repeat("x", maxQuoteLen+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/testimonials", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandler_Submit_SanitizesHTML(t *testing.T) {
	router := newTestRouter(t)

	created := submit(t, router, `Eve<script>alert(1)</script>`, "Nice <b>work</b>!")
	if strings.Contains(created.Author, "<script>") {
		t.Errorf("script survived in author: %q", created.Author)
	}
}

func TestHandler_ModerationFlow(t *testing.T) {
	router := newTestRouter(t)

	created := submit(t, router, "Alex Chen", "Superb collaboration.")

	// Approve.
	rec := doJSON(t, router, http.MethodPatch, "/testimonials/"+created.ID.Hex()+"/status",
		map[string]any{"status": "approved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Now public.
	rec = doJSON(t, router, http.MethodGet, "/testimonials", nil)
	var list []models.Testimonial
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 {
		t.Fatalf("public list = %d entries after approval, want 1", len(list))
	}

	// Reject again; disappears from public view.
	rec = doJSON(t, router, http.MethodPatch, "/testimonials/"+created.ID.Hex()+"/status",
		map[string]any{"status": "rejected"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reject status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/testimonials", nil)
	list = nil
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("public list = %d entries after rejection, want 0", len(list))
	}

	// Still in the moderation queue.
	rec = doJSON(t, router, http.MethodGet, "/testimonials/all", nil)
	var all []models.Testimonial
	json.NewDecoder(rec.Body).Decode(&all)
	if len(all) != 1 {
		t.Errorf("moderation queue = %d entries, want 1", len(all))
	}
}

func TestHandler_SetStatus_Invalid(t *testing.T) {
	router := newTestRouter(t)
	created := submit(t, router, "A", "q")

	rec := doJSON(t, router, http.MethodPatch, "/testimonials/"+created.ID.Hex()+"/status",
		map[string]any{"status": "published"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status code = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPatch, "/testimonials/not-an-id/status",
		map[string]any{"status": "approved"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	router := newTestRouter(t)
	created := submit(t, router, "A", "q")

	rec := doJSON(t, router, http.MethodDelete, "/testimonials/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/testimonials/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

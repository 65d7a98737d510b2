package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliostack/folio/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestHandler_Check(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	h := NewHandler(db.Client(), logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Check() status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("response status = %q, want %q", resp.Status, "ok")
	}
	if resp.Services["mongodb"] != "ok" {
		t.Errorf("mongodb status = %q, want %q", resp.Services["mongodb"], "ok")
	}
}

func TestHandler_Ready(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	h := NewHandler(db.Client(), logger)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Ready() status = %d, want %d", rec.Code, http.StatusOK)
	}

	if body := rec.Body.String(); body != `{"status":"ready"}` {
		t.Errorf("Ready() body = %q, want %q", body, `{"status":"ready"}`)
	}
}

func TestHandler_Live(t *testing.T) {
	// Live doesn't touch the DB.
	h := NewHandler(nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Live() status = %d, want %d", rec.Code, http.StatusOK)
	}

	if body := rec.Body.String(); body != `{"status":"alive"}` {
		t.Errorf("Live() body = %q, want %q", body, `{"status":"alive"}`)
	}
}

func TestMountRootEndpoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	h := NewHandler(db.Client(), logger)
	r := chi.NewRouter()
	MountRootEndpoints(r, h)

	for _, path := range []string{"/readyz", "/livez"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
			}
		})
	}
}

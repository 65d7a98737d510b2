// Package ledgerapi exposes the request ledger to the admin dashboard.
// It is the read side of the ledger middleware: when a content update
// fails in the field, this is where the failure shows up.
package ledgerapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	ledgerstore "github.com/foliostack/folio/internal/app/store/ledger"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles ledger API requests.
type Handler struct {
	store  *ledgerstore.Store
	logger *zap.Logger
}

// NewHandler creates a new ledgerapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  ledgerstore.New(db),
		logger: logger,
	}
}

// Routes returns a router with the ledger endpoints.
//
// When mounted at /api/ledger (behind API key auth):
//   - GET /api/ledger                - recent entries (?section=, ?errors=1, ?limit=)
//   - GET /api/ledger/{requestID}    - one entry by request ID
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Get("/{requestID}", h.GetHandler)
	return r
}

// ListHandler handles GET /api/ledger.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ledgerstore.ListFilter{
		Section:    q.Get("section"),
		ErrorClass: q.Get("error_class"),
		ErrorsOnly: q.Get("errors") == "1" || q.Get("errors") == "true",
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSONError(w, r, "Invalid since (want RFC3339)", http.StatusBadRequest)
			return
		}
		filter.Since = &since
	}

	var limit int64
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeJSONError(w, r, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.store.List(r.Context(), filter, limit)
	if err != nil {
		h.logger.Error("failed to list ledger entries", zap.Error(err))
		writeJSONError(w, r, "Failed to list ledger entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []ledgerstore.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GetHandler handles GET /api/ledger/{requestID}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	entry, err := h.store.GetByRequestID(r.Context(), requestID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeJSONError(w, r, "Ledger entry not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load ledger entry",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to load ledger entry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response and records it in the ledger.
func writeJSONError(w http.ResponseWriter, r *http.Request, msg string, code int) {
	ledger.SetErrorMessage(r.Context(), msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

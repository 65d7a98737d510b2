// Package keysapi manages stored admin API keys. The full key value is
// returned exactly once, at creation; afterwards only the display prefix
// is visible.
package keysapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apikeystore "github.com/foliostack/folio/internal/app/store/apikey"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles API key management requests.
type Handler struct {
	store  *apikeystore.Store
	logger *zap.Logger
}

// NewHandler creates a new keysapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  apikeystore.New(db),
		logger: logger,
	}
}

// Routes returns a router with the key management endpoints.
//
// When mounted at /api/keys (behind API key auth):
//   - GET    /api/keys             - list keys (prefixes only)
//   - POST   /api/keys             - create, returns full key once
//   - POST   /api/keys/{id}/revoke - revoke
//   - DELETE /api/keys/{id}        - delete permanently
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Post("/{id}/revoke", h.RevokeHandler)
	r.Delete("/{id}", h.DeleteHandler)
	return r
}

// keyView is the safe representation of a stored key.
type keyView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	KeyPrefix  string `json:"key_prefix"`
	Status     string `json:"status"`
	UsageCount int64  `json:"usage_count"`
	CreatedAt  string `json:"created_at"`
}

func view(k apikeystore.APIKey) keyView {
	return keyView{
		ID:         k.ID.Hex(),
		Name:       k.Name,
		KeyPrefix:  k.KeyPrefix,
		Status:     k.Status,
		UsageCount: k.UsageCount,
		CreatedAt:  k.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListHandler handles GET /api/keys.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list api keys", zap.Error(err))
		writeJSONError(w, r, "Failed to list keys", http.StatusInternalServerError)
		return
	}

	views := make([]keyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, view(k))
	}
	writeJSON(w, http.StatusOK, map[string]any{"keys": views})
}

// CreateHandler handles POST /api/keys.
//
// Response (201 Created) includes the full key value; it cannot be
// retrieved again.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		writeJSONError(w, r, "Name is required", http.StatusBadRequest)
		return
	}

	result, err := h.store.Create(r.Context(), in.Name)
	if err != nil {
		if errors.Is(err, apikeystore.ErrDuplicateName) {
			writeJSONError(w, r, "A key with this name already exists", http.StatusConflict)
			return
		}
		h.logger.Error("failed to create api key", zap.Error(err))
		writeJSONError(w, r, "Failed to create key", http.StatusInternalServerError)
		return
	}

	h.logger.Info("api key created",
		zap.String("name", in.Name),
		zap.String("prefix", result.Key.KeyPrefix),
	)
	writeJSON(w, http.StatusCreated, map[string]any{
		"key":      view(result.Key),
		"full_key": result.FullKey,
	})
}

// RevokeHandler handles POST /api/keys/{id}/revoke.
func (h *Handler) RevokeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}

	if err := h.store.Revoke(r.Context(), id); err != nil {
		if errors.Is(err, apikeystore.ErrNotFound) {
			writeJSONError(w, r, "Key not found or already revoked", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to revoke api key",
			zap.String("id", id.Hex()),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to revoke key", http.StatusInternalServerError)
		return
	}

	h.logger.Info("api key revoked", zap.String("id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHandler handles DELETE /api/keys/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apikeystore.ErrNotFound) {
			writeJSONError(w, r, "Key not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete api key",
			zap.String("id", id.Hex()),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to delete key", http.StatusInternalServerError)
		return
	}

	h.logger.Info("api key deleted", zap.String("id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) objectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, r, "Invalid key id", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
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

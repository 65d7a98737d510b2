// Package sectionapi provides the content section API.
//
// Every section (home, about, services, ...) is a singleton document with
// the same lifecycle: read, partial update, visibility toggle, reset to
// defaults, and a server-side revision log with rollback. The section key
// comes from the URL and is resolved against the section registry, so
// adding a section is a registry entry, not a new handler.
package sectionapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	revisionstore "github.com/foliostack/folio/internal/app/store/revision"
	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/foliostack/folio/internal/app/system/sectionkit"
	"github.com/foliostack/folio/internal/domain/sections"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles section API requests.
type Handler struct {
	db     *mongo.Database
	logger *zap.Logger
	hub    *events.Hub
	revs   *revisionstore.Store
	keep   int64 // revisions retained per section
}

// NewHandler creates a new sectionapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, hub *events.Hub, revs *revisionstore.Store, revisionKeep int) *Handler {
	keep := int64(revisionKeep)
	if keep <= 0 {
		keep = 5
	}
	return &Handler{
		db:     db,
		logger: logger,
		hub:    hub,
		revs:   revs,
		keep:   keep,
	}
}

// kit resolves the {section} URL parameter against the registry. A miss is
// a 404, written here so every handler can just early-return.
func (h *Handler) kit(w http.ResponseWriter, r *http.Request) (*sectionkit.Kit, bool) {
	key := chi.URLParam(r, "section")
	def, ok := sections.Lookup(key)
	if !ok {
		writeJSONError(w, r, "Unknown section: "+key, http.StatusNotFound)
		return nil, false
	}
	return sectionkit.New(h.db, def), true
}

// GetHandler handles GET /api/{section}.
//
// Returns the section document, creating it from defaults if this is the
// first read. The response always includes is_visible; the public site
// decides what to do with hidden sections.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}

	doc, err := kit.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load section",
			zap.String("section", kit.Definition().Key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to load section", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// UpdateHandler handles PUT /api/{section}.
//
// The body is a partial document: only known fields are applied, absent
// fields keep their stored values, and empty strings are treated as
// "leave unchanged" so a half-filled admin form can't blank out content.
// The pre-update state is appended to the revision log once the write has
// been applied, so a failed update never leaves a no-op undo level.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}
	key := kit.Definition().Key

	var partial bson.M
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(partial) == 0 {
		writeJSONError(w, r, "Empty update", http.StatusBadRequest)
		return
	}

	// Snapshot the current state so the write can be rolled back. The
	// snapshot is only appended after the update succeeds; the update is a
	// single-document write, so the pre-read state stays valid.
	before, err := kit.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to snapshot section before update",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to update section", http.StatusInternalServerError)
		return
	}

	doc, err := kit.Update(r.Context(), partial)
	if err != nil {
		h.logger.Error("failed to update section",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to update section", http.StatusInternalServerError)
		return
	}

	// The content change is already applied; a failed append costs one undo
	// level, not the request.
	if _, err := h.revs.Append(r.Context(), key, before, "update"); err != nil {
		h.logger.Warn("failed to record section revision",
			zap.String("section", key),
			zap.Error(err),
		)
	}

	// Keep the log bounded; a failed trim is caught up by the hourly job.
	if _, err := h.revs.Trim(r.Context(), key, h.keep); err != nil {
		h.logger.Warn("failed to trim section revisions",
			zap.String("section", key),
			zap.Error(err),
		)
	}

	h.logger.Debug("section updated", zap.String("section", key))
	h.hub.Publish(events.Event{Type: "section.updated", Section: key})
	writeJSON(w, http.StatusOK, doc)
}

// ToggleVisibilityHandler handles PATCH /api/{section}/visibility.
//
// Flips is_visible and returns the updated document. Visibility lives on
// the section document only; nothing else stores a copy.
func (h *Handler) ToggleVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}
	key := kit.Definition().Key

	doc, visible, err := kit.ToggleVisibility(r.Context())
	if err != nil {
		h.logger.Error("failed to toggle section visibility",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to toggle visibility", http.StatusInternalServerError)
		return
	}

	h.logger.Debug("section visibility toggled",
		zap.String("section", key),
		zap.Bool("visible", visible),
	)
	h.hub.Publish(events.Event{Type: "section.visibility", Section: key})
	writeJSON(w, http.StatusOK, doc)
}

// ResetHandler handles POST /api/{section}/reset.
//
// Replaces the section with its factory defaults. The pre-reset state is
// saved as a revision so an accidental reset can be rolled back. Reset
// also collapses any duplicate documents an old deployment left behind.
func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}
	key := kit.Definition().Key

	before, err := kit.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to snapshot section before reset",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to reset section", http.StatusInternalServerError)
		return
	}

	doc, err := kit.Reset(r.Context())
	if err != nil {
		h.logger.Error("failed to reset section",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to reset section", http.StatusInternalServerError)
		return
	}

	if _, err := h.revs.Append(r.Context(), key, before, "reset"); err != nil {
		h.logger.Warn("failed to record section revision",
			zap.String("section", key),
			zap.Error(err),
		)
	}

	if _, err := h.revs.Trim(r.Context(), key, h.keep); err != nil {
		h.logger.Warn("failed to trim section revisions",
			zap.String("section", key),
			zap.Error(err),
		)
	}

	h.logger.Info("section reset to defaults", zap.String("section", key))
	h.hub.Publish(events.Event{Type: "section.reset", Section: key})
	writeJSON(w, http.StatusOK, doc)
}

// RevisionsHandler handles GET /api/{section}/revisions.
//
// Lists the retained revisions for the section, newest first. ?limit=N
// caps the result (default: all retained).
func (h *Handler) RevisionsHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}
	key := kit.Definition().Key

	limit := h.keep
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeJSONError(w, r, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	revs, err := h.revs.List(r.Context(), key, limit)
	if err != nil {
		h.logger.Error("failed to list section revisions",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to list revisions", http.StatusInternalServerError)
		return
	}
	if revs == nil {
		revs = []revisionstore.Revision{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"section":   key,
		"revisions": revs,
	})
}

// RollbackHandler handles POST /api/{section}/rollback.
//
// Restores the section to a saved revision and removes that revision from
// the log (rollback consumes it, like popping an undo stack). The body may
// name a specific revision with {"seq": N}; default is the most recent.
func (h *Handler) RollbackHandler(w http.ResponseWriter, r *http.Request) {
	kit, ok := h.kit(w, r)
	if !ok {
		return
	}
	key := kit.Definition().Key

	var in struct {
		Seq *int64 `json:"seq"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
	}

	var rev revisionstore.Revision
	var err error
	if in.Seq != nil {
		rev, err = h.revs.GetBySeq(r.Context(), key, *in.Seq)
	} else {
		rev, err = h.revs.Latest(r.Context(), key)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSONError(w, r, "No revision to roll back to", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load section revision",
			zap.String("section", key),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to roll back section", http.StatusInternalServerError)
		return
	}

	doc, err := kit.Restore(r.Context(), rev.Fields)
	if err != nil {
		h.logger.Error("failed to restore section revision",
			zap.String("section", key),
			zap.Int64("seq", rev.Seq),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to roll back section", http.StatusInternalServerError)
		return
	}

	if err := h.revs.Delete(r.Context(), rev.ID); err != nil {
		h.logger.Warn("failed to remove consumed revision",
			zap.String("section", key),
			zap.Int64("seq", rev.Seq),
			zap.Error(err),
		)
	}

	h.logger.Info("section rolled back",
		zap.String("section", key),
		zap.Int64("seq", rev.Seq),
	)
	h.hub.Publish(events.Event{Type: "section.rollback", Section: key})
	writeJSON(w, http.StatusOK, doc)
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

// Package settingsapi provides the site settings API.
//
// Settings are a single aggregate document (site info, SEO, performance,
// maintenance). Section visibility is NOT stored here; it is derived from
// the per-section is_visible flags at read time so there is exactly one
// source of truth for what is shown on the public site.
package settingsapi

import (
	"encoding/json"
	"net/http"

	settingsstore "github.com/foliostack/folio/internal/app/store/settings"
	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/foliostack/folio/internal/app/system/sectionkit"
	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/domain/sections"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles settings API requests.
type Handler struct {
	db     *mongo.Database
	store  *settingsstore.Store
	logger *zap.Logger
	hub    *events.Hub
}

// NewHandler creates a new settingsapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, hub *events.Hub) *Handler {
	return &Handler{
		db:     db,
		store:  settingsstore.New(db),
		logger: logger,
		hub:    hub,
	}
}

// settingsResponse is the aggregate plus the derived visibility map.
type settingsResponse struct {
	models.SiteSettings
	SectionVisibility map[string]bool `json:"section_visibility"`
}

// GetHandler handles GET /api/settings.
//
// Returns the settings aggregate plus a section_visibility map read live
// from the section documents.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load site settings", zap.Error(err))
		writeJSONError(w, r, "Failed to load settings", http.StatusInternalServerError)
		return
	}

	visibility := make(map[string]bool, len(sections.All()))
	for _, def := range sections.All() {
		visible, err := sectionkit.New(h.db, def).Visible(r.Context())
		if err != nil {
			h.logger.Error("failed to read section visibility",
				zap.String("section", def.Key),
				zap.Error(err),
			)
			writeJSONError(w, r, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		visibility[def.Key] = visible
	}

	writeJSON(w, http.StatusOK, settingsResponse{
		SiteSettings:      settings,
		SectionVisibility: visibility,
	})
}

// UpdateHandler handles PUT /api/settings.
//
// The body carries any subset of the aggregate's groups; groups absent
// from the body keep their stored values. A section_visibility key in the
// body is rejected - visibility is changed through the section endpoints.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if _, ok := raw["section_visibility"]; ok {
		writeJSONError(w, r, "Visibility is managed per section; use PATCH /api/{section}/visibility", http.StatusBadRequest)
		return
	}

	settings, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load site settings", zap.Error(err))
		writeJSONError(w, r, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	// Merge group by group so a partial body can't zero the rest.
	if msg, ok := raw["site_info"]; ok {
		if err := json.Unmarshal(msg, &settings.SiteInfo); err != nil {
			writeJSONError(w, r, "Invalid site_info", http.StatusBadRequest)
			return
		}
	}
	if msg, ok := raw["seo"]; ok {
		if err := json.Unmarshal(msg, &settings.SEO); err != nil {
			writeJSONError(w, r, "Invalid seo", http.StatusBadRequest)
			return
		}
	}
	if msg, ok := raw["performance"]; ok {
		if err := json.Unmarshal(msg, &settings.Performance); err != nil {
			writeJSONError(w, r, "Invalid performance", http.StatusBadRequest)
			return
		}
	}
	if msg, ok := raw["maintenance"]; ok {
		if err := json.Unmarshal(msg, &settings.Maintenance); err != nil {
			writeJSONError(w, r, "Invalid maintenance", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.Save(r.Context(), settings); err != nil {
		h.logger.Error("failed to save site settings", zap.Error(err))
		writeJSONError(w, r, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	saved, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to reload site settings", zap.Error(err))
		writeJSONError(w, r, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	h.logger.Info("site settings updated")
	h.hub.Publish(events.Event{Type: "settings.updated"})
	writeJSON(w, http.StatusOK, saved)
}

// resetOutcome reports one section's result within a bulk reset.
type resetOutcome struct {
	Section string `json:"section"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// ResetAllHandler handles POST /api/settings/reset-all.
//
// Resets the settings aggregate and every content section to factory
// defaults. Sections are reset sequentially and independently: one failure
// doesn't abort the rest, and the response reports each section's outcome
// so a partial failure is never silent. Status is 200 when everything
// succeeded, 207 otherwise.
func (h *Handler) ResetAllHandler(w http.ResponseWriter, r *http.Request) {
	outcomes := make([]resetOutcome, 0, len(sections.All())+1)
	failed := 0

	if _, err := h.store.Reset(r.Context()); err != nil {
		h.logger.Error("failed to reset site settings", zap.Error(err))
		outcomes = append(outcomes, resetOutcome{Section: "settings", Error: err.Error()})
		failed++
	} else {
		outcomes = append(outcomes, resetOutcome{Section: "settings", OK: true})
	}

	for _, def := range sections.All() {
		if _, err := sectionkit.New(h.db, def).Reset(r.Context()); err != nil {
			h.logger.Error("failed to reset section",
				zap.String("section", def.Key),
				zap.Error(err),
			)
			outcomes = append(outcomes, resetOutcome{Section: def.Key, Error: err.Error()})
			failed++
			continue
		}
		outcomes = append(outcomes, resetOutcome{Section: def.Key, OK: true})
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
		ledger.SetErrorClass(r.Context(), "partial_reset")
	}

	h.logger.Info("bulk reset completed",
		zap.Int("sections", len(outcomes)),
		zap.Int("failed", failed),
	)
	h.hub.Publish(events.Event{Type: "settings.reset"})
	writeJSON(w, status, map[string]any{
		"failed":   failed,
		"outcomes": outcomes,
	})
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

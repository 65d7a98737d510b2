// Package testimonialapi provides the testimonial submission and
// moderation API.
//
// Visitors submit testimonials without authentication; submissions always
// enter the queue as pending. Only approved testimonials are served on the
// public read path. Moderation (list all, status changes, delete) requires
// the admin API key.
package testimonialapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	testimonialstore "github.com/foliostack/folio/internal/app/store/testimonial"
	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/app/system/htmlsanitize"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/foliostack/folio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxQuoteLen caps submissions; anything longer is not a testimonial.
const maxQuoteLen = 2000

// Handler handles testimonial API requests.
type Handler struct {
	store  *testimonialstore.Store
	logger *zap.Logger
	hub    *events.Hub
}

// NewHandler creates a new testimonialapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, hub *events.Hub) *Handler {
	return &Handler{
		store:  testimonialstore.New(db),
		logger: logger,
		hub:    hub,
	}
}

// ListApprovedHandler handles GET /api/testimonials.
// Public: approved testimonials only, newest first.
func (h *Handler) ListApprovedHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListApproved(r.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		writeJSONError(w, r, "Failed to list testimonials", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Testimonial{}
	}
	writeJSON(w, http.StatusOK, list)
}

// SubmitHandler handles POST /api/testimonials.
//
// Public submission. The status field in the body, if any, is ignored:
// every submission starts pending.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Author  string `json:"author"`
		Role    string `json:"role"`
		Company string `json:"company"`
		Quote   string `json:"quote"`
		Rating  int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	in.Author = strings.TrimSpace(in.Author)
	in.Quote = strings.TrimSpace(in.Quote)
	if in.Author == "" || in.Quote == "" {
		writeJSONError(w, r, "Author and quote are required", http.StatusBadRequest)
		return
	}
	if len(in.Quote) > maxQuoteLen {
		writeJSONError(w, r, "Quote is too long", http.StatusBadRequest)
		return
	}
	if in.Rating < 0 || in.Rating > 5 {
		writeJSONError(w, r, "Rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	created, err := h.store.Create(r.Context(), models.Testimonial{
		Author:  htmlsanitize.Sanitize(in.Author),
		Role:    htmlsanitize.Sanitize(in.Role),
		Company: htmlsanitize.Sanitize(in.Company),
		Quote:   htmlsanitize.Sanitize(in.Quote),
		Rating:  in.Rating,
	})
	if err != nil {
		h.logger.Error("failed to create testimonial", zap.Error(err))
		writeJSONError(w, r, "Failed to submit testimonial", http.StatusInternalServerError)
		return
	}

	h.logger.Info("testimonial submitted", zap.String("id", created.ID.Hex()))
	h.hub.Publish(events.Event{Type: "testimonial.submitted"})
	writeJSON(w, http.StatusCreated, created)
}

// ListAllHandler handles GET /api/testimonials/all.
// Admin: the full moderation queue, newest first.
func (h *Handler) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list moderation queue", zap.Error(err))
		writeJSONError(w, r, "Failed to list testimonials", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Testimonial{}
	}
	writeJSON(w, http.StatusOK, list)
}

// SetStatusHandler handles PATCH /api/testimonials/{id}/status.
//
// Admin: moves a testimonial between pending, approved, and rejected.
func (h *Handler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !models.ValidTestimonialStatus(in.Status) {
		writeJSONError(w, r, "Invalid status: "+in.Status, http.StatusBadRequest)
		return
	}

	updated, err := h.store.SetStatus(r.Context(), id, in.Status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSONError(w, r, "Testimonial not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update testimonial status",
			zap.String("id", id.Hex()),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to update testimonial", http.StatusInternalServerError)
		return
	}

	h.logger.Info("testimonial status changed",
		zap.String("id", id.Hex()),
		zap.String("status", in.Status),
	)
	h.hub.Publish(events.Event{Type: "testimonial.moderated"})
	writeJSON(w, http.StatusOK, updated)
}

// DeleteHandler handles DELETE /api/testimonials/{id}. Admin only.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.objectID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSONError(w, r, "Testimonial not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete testimonial",
			zap.String("id", id.Hex()),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to delete testimonial", http.StatusInternalServerError)
		return
	}

	h.logger.Info("testimonial deleted", zap.String("id", id.Hex()))
	h.hub.Publish(events.Event{Type: "testimonial.moderated"})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) objectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, r, "Invalid testimonial id", http.StatusBadRequest)
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

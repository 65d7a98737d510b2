// Package chatapi provides the visitor chatbot API.
//
// The bot reply is generated server-side by the rule engine and stored in
// the visitor's transcript together with the message that prompted it, so
// history survives page reloads. Visitors are identified by a client-kept
// ID; there is no account and no authentication on this surface.
package chatapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	chatstore "github.com/foliostack/folio/internal/app/store/chat"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/foliostack/folio/internal/app/system/sectionkit"
	"github.com/foliostack/folio/internal/chatbot"
	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/domain/sections"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxMessageLen caps a single visitor message.
const maxMessageLen = 1000

// Handler handles chatbot API requests.
type Handler struct {
	db     *mongo.Database
	store  *chatstore.Store
	engine *chatbot.Engine
	logger *zap.Logger
}

// NewHandler creates a new chatapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		db:     db,
		store:  chatstore.New(db),
		engine: chatbot.New(),
		logger: logger,
	}
}

// HistoryHandler handles GET /api/chatbot/history/{userID}.
// Returns an empty transcript rather than 404 for unknown visitors so the
// client needs no special first-visit path.
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSONError(w, r, "Missing user id", http.StatusBadRequest)
		return
	}

	hist, err := h.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSON(w, http.StatusOK, models.ChatHistory{
				UserID:   userID,
				Messages: []models.ChatMessage{},
			})
			return
		}
		h.logger.Error("failed to load chat history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to load history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, hist)
}

// MessageHandler handles POST /api/chatbot/history.
//
// Appends the visitor's message, generates the bot reply from live site
// content, stores both, and returns the reply plus the updated transcript.
func (h *Handler) MessageHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, r, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		writeJSONError(w, r, "Missing user id", http.StatusBadRequest)
		return
	}
	if len(in.Message) > maxMessageLen {
		writeJSONError(w, r, "Message is too long", http.StatusBadRequest)
		return
	}

	info := h.siteInfo(r)
	reply := h.engine.Reply(in.Message, info)

	now := time.Now().UTC()
	userMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Content:   in.Message,
		Type:      models.ChatMessageUser,
		Timestamp: now,
	}
	botMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Content:   reply,
		Type:      models.ChatMessageBot,
		Timestamp: now,
	}

	hist, err := h.store.Append(r.Context(), in.UserID, userMsg, botMsg)
	if err != nil {
		h.logger.Error("failed to append chat messages",
			zap.String("user_id", in.UserID),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to save message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reply":   botMsg,
		"history": hist,
	})
}

// ClearHandler handles DELETE /api/chatbot/history/{userID}.
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSONError(w, r, "Missing user id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear chat history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to clear history", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ContactInfoHandler handles GET /api/chatbot/contact-info.
// The same contact snapshot the bot answers from, for the chat widget UI.
func (h *Handler) ContactInfoHandler(w http.ResponseWriter, r *http.Request) {
	info := h.siteInfo(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"name":     info.OwnerName,
		"email":    info.Email,
		"phone":    info.Phone,
		"location": info.Location,
		"linkedin": info.LinkedIn,
		"github":   info.GitHub,
	})
}

// PortfolioInfoHandler handles GET /api/chatbot/portfolio-info.
func (h *Handler) PortfolioInfoHandler(w http.ResponseWriter, r *http.Request) {
	info := h.siteInfo(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"name":             info.OwnerName,
		"title":            info.Title,
		"projects":         info.ProjectCount,
		"years_experience": info.YearsExp,
		"skills":           info.Skills,
	})
}

// siteInfo assembles the engine's view of the site from the contact, home,
// about, and services sections. Read failures degrade to empty fields; the
// bot still answers, just less specifically.
func (h *Handler) siteInfo(r *http.Request) chatbot.SiteInfo {
	var info chatbot.SiteInfo

	if doc, err := h.section(r, "contact"); err == nil {
		info.Email = str(doc, "email")
		info.Phone = str(doc, "phone")
		info.Location = str(doc, "address")
		if social, ok := doc["social"].(bson.M); ok {
			info.LinkedIn = str(social, "linkedin")
			info.GitHub = str(social, "github")
		}
	}

	if doc, err := h.section(r, "home"); err == nil {
		info.OwnerName = str(doc, "name")
		info.Title = str(doc, "title")
	}

	if doc, err := h.section(r, "about"); err == nil {
		if info.Location == "" {
			info.Location = str(doc, "location")
		}
		info.YearsExp = leadingInt(str(doc, "years_experience"))
		info.ProjectCount = leadingInt(str(doc, "projects_completed"))
	}

	if doc, err := h.section(r, "services"); err == nil {
		if list, ok := doc["services"].(bson.A); ok {
			for _, item := range list {
				if svc, ok := item.(bson.M); ok {
					if title := str(svc, "title"); title != "" {
						info.Skills = append(info.Skills, title)
					}
				}
			}
		}
	}

	return info
}

func (h *Handler) section(r *http.Request, key string) (bson.M, error) {
	def, ok := sections.Lookup(key)
	if !ok {
		return nil, errors.New("unknown section")
	}
	doc, err := sectionkit.New(h.db, def).Get(r.Context())
	if err != nil {
		h.logger.Warn("chatbot could not read section",
			zap.String("section", key),
			zap.Error(err),
		)
		return nil, err
	}
	return doc, nil
}

func str(doc bson.M, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// leadingInt parses the number from display strings like "10+" or "60+".
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
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

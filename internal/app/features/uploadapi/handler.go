// Package uploadapi provides the admin image upload endpoint.
//
// Images referenced by section content (hero images, portraits, blog
// covers) are uploaded here and the returned URL is put into the section
// document by a normal section update.
package uploadapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadSize caps image uploads at 8 MB.
const maxUploadSize = 8 << 20

// allowedTypes maps accepted image content types to their extension.
// The extension wins over whatever the client named the file.
var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Handler handles image upload requests.
type Handler struct {
	fileStorage storage.Store
	logger      *zap.Logger
}

// NewHandler creates a new uploadapi handler.
func NewHandler(fileStorage storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// UploadHandler handles POST /api/upload/image.
//
// Expects a multipart form with an "image" field. The stored object gets a
// uuid-based name under images/YYYY/MM/, so uploads never collide and the
// original filename never reaches storage.
//
// Response (201 Created): {"url": "...", "path": "images/2026/09/..."}
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	// Cut oversized uploads off at the transport instead of buffering them.
	// The slack covers multipart framing around an image at the size cap.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(64<<10))
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSONError(w, r, "Image too large (max 8MB)", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSONError(w, r, "Missing image field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		writeJSONError(w, r, "Unsupported image type: "+contentType, http.StatusUnsupportedMediaType)
		return
	}
	if header.Size > maxUploadSize {
		writeJSONError(w, r, "Image too large (max 8MB)", http.StatusRequestEntityTooLarge)
		return
	}

	now := time.Now().UTC()
	uniqueName := uuid.New().String() + ext
	storagePath := fmt.Sprintf("images/%04d/%02d/%s", now.Year(), int(now.Month()), uniqueName)

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := h.fileStorage.Put(r.Context(), storagePath, file, opts); err != nil {
		h.logger.Error("failed to store uploaded image",
			zap.String("path", storagePath),
			zap.Error(err),
		)
		writeJSONError(w, r, "Failed to store image", http.StatusInternalServerError)
		return
	}

	h.logger.Info("image uploaded",
		zap.String("path", storagePath),
		zap.String("name", filepath.Base(header.Filename)),
		zap.Int64("size", header.Size),
	)

	writeJSON(w, http.StatusCreated, map[string]string{
		"url":  h.fileStorage.URL(storagePath),
		"path": storagePath,
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

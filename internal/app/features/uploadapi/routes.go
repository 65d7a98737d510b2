package uploadapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the upload endpoints.
//
// When mounted at /api/upload (behind API key auth):
//   - POST /api/upload/image - multipart image upload
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/image", h.UploadHandler)
	return r
}

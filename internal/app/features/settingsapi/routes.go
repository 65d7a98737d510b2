package settingsapi

import (
	"github.com/go-chi/chi/v5"
)

// MountPublic registers the read-only settings endpoint on r.
//
// When r is the /api router:
//   - GET /api/settings - aggregate plus derived section visibility
func MountPublic(r chi.Router, h *Handler) {
	r.Get("/settings", h.GetHandler)
}

// MountAdmin registers the settings write endpoints on r.
//
// When r is the /api router (behind API key auth):
//   - PUT  /api/settings           - partial merge of the aggregate
//   - POST /api/settings/reset-all - reset settings and every section
func MountAdmin(r chi.Router, h *Handler) {
	r.Put("/settings", h.UpdateHandler)
	r.Post("/settings/reset-all", h.ResetAllHandler)
}

package sectionapi

import (
	"github.com/go-chi/chi/v5"
)

// MountPublic registers the read-only section endpoints on r.
//
// When r is the /api router:
//   - GET /api/{section} - section document (created from defaults on first read)
//
// No authentication; these feed the public site.
func MountPublic(r chi.Router, h *Handler) {
	r.Get("/{section}", h.GetHandler)
}

// MountAdmin registers the section write endpoints on r.
//
// When r is the /api router (behind API key auth):
//   - PUT    /api/{section}            - partial update
//   - PATCH  /api/{section}/visibility - toggle is_visible
//   - POST   /api/{section}/reset      - restore factory defaults
//   - GET    /api/{section}/revisions  - list retained revisions
//   - POST   /api/{section}/rollback   - restore a saved revision
//
// Registration on a shared router (rather than a mounted sub-router) lets
// the public GET and the admin writes coexist on the same /{section}
// pattern with different methods.
func MountAdmin(r chi.Router, h *Handler) {
	r.Put("/{section}", h.UpdateHandler)
	r.Patch("/{section}/visibility", h.ToggleVisibilityHandler)
	r.Post("/{section}/reset", h.ResetHandler)
	r.Get("/{section}/revisions", h.RevisionsHandler)
	r.Post("/{section}/rollback", h.RollbackHandler)
}

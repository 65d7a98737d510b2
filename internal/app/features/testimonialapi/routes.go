package testimonialapi

import (
	"github.com/go-chi/chi/v5"
)

// MountPublic registers the public testimonial endpoints on r.
//
// When r is the /api router:
//   - GET  /api/testimonials - approved testimonials
//   - POST /api/testimonials - submit (enters the queue as pending)
func MountPublic(r chi.Router, h *Handler) {
	r.Get("/testimonials", h.ListApprovedHandler)
	r.Post("/testimonials", h.SubmitHandler)
}

// MountAdmin registers the moderation endpoints on r.
//
// When r is the /api router (behind API key auth):
//   - GET    /api/testimonials/all         - full moderation queue
//   - PATCH  /api/testimonials/{id}/status - pending|approved|rejected
//   - DELETE /api/testimonials/{id}
func MountAdmin(r chi.Router, h *Handler) {
	r.Get("/testimonials/all", h.ListAllHandler)
	r.Patch("/testimonials/{id}/status", h.SetStatusHandler)
	r.Delete("/testimonials/{id}", h.DeleteHandler)
}

package chatapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the chatbot endpoints.
//
// When mounted at /api/chatbot:
//   - GET    /api/chatbot/history/{userID} - visitor transcript
//   - POST   /api/chatbot/history          - send message, get bot reply
//   - DELETE /api/chatbot/history/{userID} - clear transcript
//   - GET    /api/chatbot/contact-info     - contact snapshot for the widget
//   - GET    /api/chatbot/portfolio-info   - portfolio snapshot for the widget
//
// All endpoints are public; visitors are anonymous.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/history/{userID}", h.HistoryHandler)
	r.Post("/history", h.MessageHandler)
	r.Delete("/history/{userID}", h.ClearHandler)
	r.Get("/contact-info", h.ContactInfoHandler)
	r.Get("/portfolio-info", h.PortfolioInfoHandler)
	return r
}

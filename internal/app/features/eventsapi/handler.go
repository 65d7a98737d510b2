// Package eventsapi streams content change notifications to clients over
// Server-Sent Events. The public site and the admin dashboard hold one
// stream open instead of polling every section endpoint; on a dropped
// connection the browser's EventSource reconnects and the client re-fetches
// whatever it cares about.
package eventsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// heartbeatInterval keeps intermediaries from timing out idle streams.
const heartbeatInterval = 25 * time.Second

// Handler handles the SSE stream.
type Handler struct {
	hub    *events.Hub
	logger *zap.Logger
}

// NewHandler creates a new eventsapi handler.
func NewHandler(hub *events.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// Routes returns a router with the event stream endpoint.
//
// When mounted at /api/events:
//   - GET /api/events - SSE stream of change notifications
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.StreamHandler)
	return r
}

// StreamHandler handles GET /api/events.
//
// Each published event is written as an SSE message with the event type as
// the SSE event name and the JSON payload as data. A comment line is sent
// on an interval as a heartbeat.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Tell the client we're live before the first event arrives.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	h.logger.Debug("sse client connected",
		zap.String("remote_addr", r.RemoteAddr),
		zap.Int("subscribers", h.hub.SubscriberCount()),
	)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("sse client disconnected",
				zap.String("remote_addr", r.RemoteAddr),
			)
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("failed to encode event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}

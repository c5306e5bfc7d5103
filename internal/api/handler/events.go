package handler

import (
	"net/http"

	"github.com/vkaradzhov/belot-server/internal/api/middleware"
	"github.com/vkaradzhov/belot-server/internal/transport/sse"
)

// EventsHandler serves the SSE event stream
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Stream handles GET /api/v1/events. The connection stays open until
// the client drops or the server shuts down.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sse.ServeSSE(w, r, h.hub, player.ID)
}

package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/session"
)

// Broadcaster marshals event payloads to JSON and pushes them through
// the hub. It is the event sink the session controller talks to.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// Ensure Broadcaster satisfies the controller's sink interface
var _ session.Broadcaster = (*Broadcaster)(nil)

// NewBroadcaster creates a broadcaster over the given hub
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Broadcast sends an event to every connected client
func (b *Broadcaster) Broadcast(event string, payload any) {
	data, ok := b.marshal(event, payload)
	if !ok {
		return
	}
	b.hub.BroadcastEvent(event, data)
}

// SendToPlayer sends an event to one player's connections only
func (b *Broadcaster) SendToPlayer(playerID model.PlayerID, event string, payload any) {
	data, ok := b.marshal(event, payload)
	if !ok {
		return
	}
	b.hub.SendEvent(playerID, event, data)
}

func (b *Broadcaster) marshal(event string, payload any) (string, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal payload",
			slog.String("event", event),
			slog.Any("error", err))
		return "", false
	}
	return string(data), true
}

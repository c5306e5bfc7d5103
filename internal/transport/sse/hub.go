package sse

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vkaradzhov/belot-server/internal/model"
)

// message is either a broadcast (Target empty) or targeted at one player
type message struct {
	target model.PlayerID
	data   []byte
}

// DisconnectFunc is invoked when a player's last event stream closes
type DisconnectFunc func(playerID model.PlayerID)

// Hub fans events out to the connected clients of the single table.
// Broadcasts go to everyone; targeted sends reach every connection a
// player holds.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	messages   chan message
	done       chan struct{}

	onDisconnect DisconnectFunc
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "sse")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		messages:   make(chan message, 256),
		done:       make(chan struct{}),
	}
}

// SetOnDisconnect wires the teardown callback. Called once at startup.
func (h *Hub) SetOnDisconnect(fn DisconnectFunc) {
	h.onDisconnect = fn
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			lastForPlayer := false
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				lastForPlayer = true
				for other := range h.clients {
					if other.playerID == client.playerID {
						lastForPlayer = false
						break
					}
				}
			}
			clientCount := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("sse client unregistered",
				slog.String("player_id", string(client.playerID)),
				slog.Duration("connection_duration", time.Since(client.connectedAt)),
				slog.Int("total_clients", clientCount))

			if lastForPlayer && h.onDisconnect != nil {
				h.onDisconnect(client.playerID)
			}

		case msg := <-h.messages:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				if msg.target != "" && client.playerID != msg.target {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse message dropped - client buffer full",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastEvent sends an SSE event to every connected client
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.enqueue(message{data: formatSSEMessage(eventName, data)})
}

// SendEvent sends an SSE event to every connection of one player
func (h *Hub) SendEvent(playerID model.PlayerID, eventName, data string) {
	h.enqueue(message{target: playerID, data: formatSSEMessage(eventName, data)})
}

func (h *Hub) enqueue(msg message) {
	select {
	case h.messages <- msg:
	default:
		h.logger.Warn("sse message dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

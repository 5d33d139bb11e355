// Package ws exposes the cats resource over a WebSocket connection.
// Authentication is connection-scoped: the token is verified once during the
// handshake and never re-checked per message, so a token expiring
// mid-connection stays valid until the client reconnects. Role checks for
// mutating actions do re-run on every message.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// Hub tracks connected clients and fans cat mutations out to all of them,
// regardless of which transport performed the mutation.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnectionsActive.Set(float64(n))
	h.log.Debug().Uint("user_id", c.user.ID).Int("clients", n).Msg("ws client connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnectionsActive.Set(float64(n))
	h.log.Debug().Uint("user_id", c.user.ID).Int("clients", n).Msg("ws client disconnected")
}

// broadcast sends an event to every connected client. Clients whose send
// buffer is full are skipped rather than blocking the caller.
func (h *Hub) broadcast(action string, data any) {
	msg, err := json.Marshal(serverMessage{Action: action, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("action", action).Msg("ws broadcast marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// CatCreated implements ports.CatEventPublisher.
func (h *Hub) CatCreated(cat *domain.Cat) {
	metrics.CatsCreatedTotal.Inc()
	h.broadcast("cat_created", cat)
}

// CatUpdated implements ports.CatEventPublisher.
func (h *Hub) CatUpdated(cat *domain.Cat) { h.broadcast("cat_updated", cat) }

// CatRemoved implements ports.CatEventPublisher.
func (h *Hub) CatRemoved(cat *domain.Cat) { h.broadcast("cat_removed", cat) }

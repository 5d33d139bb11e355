package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

const (
	writeTimeout   = 10 * time.Second
	sendBufferSize = 16
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Clients connect from arbitrary origins (mobile app, local tooling);
	// the handshake token check gates access instead.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the envelope clients send: an action plus its payload.
type clientMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// serverMessage is the reply/broadcast envelope.
type serverMessage struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Client is one authenticated WebSocket connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	user *domain.User
}

// Gateway authenticates WebSocket handshakes and serves the per-connection
// message loop over the cat service.
type Gateway struct {
	hub  *Hub
	auth ports.AuthService
	cats ports.CatService
	log  zerolog.Logger
}

func NewGateway(hub *Hub, auth ports.AuthService, cats ports.CatService, log zerolog.Logger) *Gateway {
	return &Gateway{hub: hub, auth: auth, cats: cats, log: log}
}

// Handle upgrades GET /ws. The token comes from the handshake's ?token=
// query parameter with the Authorization header as fallback; an optional
// "Bearer " prefix is stripped. A missing or invalid token refuses the
// connection before the upgrade, so no message is ever processed for an
// unauthenticated peer.
func (g *Gateway) Handle(c echo.Context) error {
	raw := handshakeToken(c)
	if raw == "" {
		metrics.AuthFailuresTotal.WithLabelValues("ws", "unauthenticated").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	user, err := g.auth.Authenticate(c.Request().Context(), raw)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("ws", "unauthenticated").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		user: user,
	}
	g.hub.register(client)

	go client.writePump()
	go g.readPump(client)

	return nil
}

// handshakeToken extracts the raw token from the connect envelope.
func handshakeToken(c echo.Context) string {
	raw := c.QueryParam("token")
	if raw == "" {
		raw = c.Request().Header.Get("Authorization")
	}
	return strings.TrimPrefix(raw, "Bearer ")
}

func (g *Gateway) readPump(client *Client) {
	defer func() {
		g.hub.unregister(client)
		close(client.send)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.reply(serverMessage{Action: "error", Error: "malformed message"})
			continue
		}

		g.dispatch(client, msg)
	}
}

// dispatch routes one message. Token verification already happened at
// connect; only the authorization gate re-runs here, per action.
func (g *Gateway) dispatch(client *Client, msg clientMessage) {
	ctx := context.Background()

	switch msg.Action {
	case "read_all_cats":
		cats, err := g.cats.FindAll(ctx)
		if err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: err.Error()})
			return
		}
		client.reply(serverMessage{Action: msg.Action, Data: cats})

	case "add_cat":
		if !g.requireAdmin(client, msg.Action) {
			return
		}
		var payload struct {
			Name  string `json:"name"`
			Age   int    `json:"age"`
			Breed string `json:"breed"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: "malformed payload"})
			return
		}
		cat, err := g.cats.Create(ctx, ports.CreateCatInput{Name: payload.Name, Age: payload.Age, Breed: payload.Breed})
		if err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: err.Error()})
			return
		}
		client.reply(serverMessage{Action: msg.Action, Data: cat})

	case "update_cat":
		if !g.requireAdmin(client, msg.Action) {
			return
		}
		var payload struct {
			ID    uint    `json:"id"`
			Name  *string `json:"name,omitempty"`
			Age   *int    `json:"age,omitempty"`
			Breed *string `json:"breed,omitempty"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: "malformed payload"})
			return
		}
		cat, err := g.cats.Update(ctx, payload.ID, ports.UpdateCatInput{Name: payload.Name, Age: payload.Age, Breed: payload.Breed})
		if err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: err.Error()})
			return
		}
		client.reply(serverMessage{Action: msg.Action, Data: cat})

	case "remove_cat":
		if !g.requireAdmin(client, msg.Action) {
			return
		}
		var payload struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: "malformed payload"})
			return
		}
		cat, err := g.cats.Remove(ctx, payload.ID)
		if err != nil {
			client.reply(serverMessage{Action: msg.Action, Error: err.Error()})
			return
		}
		client.reply(serverMessage{Action: msg.Action, Data: cat})

	default:
		client.reply(serverMessage{Action: msg.Action, Error: "unknown action"})
	}
}

// requireAdmin runs the authorization gate for a mutating action. Forbidden
// is reported as a per-message error, distinct from the handshake-level
// unauthenticated refusal.
func (g *Gateway) requireAdmin(client *Client, action string) bool {
	if err := g.auth.Authorize(client.user.Role, domain.RoleAdmin); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("ws", "forbidden").Inc()
		client.reply(serverMessage{Action: action, Error: "forbidden"})
		return false
	}
	return true
}

func (c *Client) reply(msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// writePump serializes all writes to the connection; gorilla conns allow at
// most one concurrent writer.
func (c *Client) writePump() {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

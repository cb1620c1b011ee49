package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"wordmatch-pk-server/game"
	"wordmatch-pk-server/vocab"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Displays run on the same host; allow all origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MatchHost is what the Hub needs from the match session.
type MatchHost interface {
	Subscribe(ch chan []byte)
	Unsubscribe(ch chan []byte)
	StartMatch(pairs []vocab.VocabularyPair, durationSeconds int) error
	SelectCard(seat int, cardID string)
	CastSkill(seat int, kind game.SkillKind)
}

// TokenValidator checks the token of an auth message.
type TokenValidator interface {
	Validate(token string) (jwt.MapClaims, error)
}

// Hub maintains the set of connected displays and routes their messages to the session.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client

	Host  MatchHost
	Vocab vocab.Source
	// Auth is nil when no auth provider is configured; displays are then trusted.
	Auth TokenValidator
}

// NewHub creates a new Hub. vocab and auth may be nil.
func NewHub(host MatchHost, source vocab.Source, auth TokenValidator) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Host:       host,
		Vocab:      source,
		Auth:       auth,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "ws")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			if h.Auth == nil {
				client.subscribe()
			}
			slog.Info("display connected", "tag", "ws", "clients", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				h.Host.Unsubscribe(client.Send)
				close(client.Send)
				slog.Info("display disconnected", "tag", "ws", "clients", len(h.Clients))
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tag", "ws", "err", err)
		return
	}

	client := &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

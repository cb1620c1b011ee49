package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wordmatch-pk-server/auth"
	"wordmatch-pk-server/game"
	"wordmatch-pk-server/matcherrors"
	"wordmatch-pk-server/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Time allowed to load a vocabulary list for start_match.
	vocabTimeout = 5 * time.Second
)

// Client is a middleman between a display's websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Name string

	authenticated bool // only touched by ReadPump
	subscribeOnce sync.Once
}

// ReadPump pumps messages from the websocket connection to the session.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribe starts match_state broadcasts to this display.
func (c *Client) subscribe() {
	c.subscribeOnce.Do(func() {
		c.Hub.Host.Subscribe(c.Send)
	})
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	if envelope.Type == "auth" {
		c.handleAuth(envelope.Raw)
		return
	}
	if c.Hub.Auth != nil && !c.authenticated {
		c.sendError("Authenticate first.")
		return
	}

	switch envelope.Type {
	case "start_match":
		c.handleStartMatch(envelope.Raw)
	case "select_card":
		c.handleSelectCard(envelope.Raw)
	case "cast_skill":
		c.handleCastSkill(envelope.Raw)
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	if c.Hub.Auth == nil {
		c.sendError("Server auth not configured.")
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Token == "" {
		c.sendError("Invalid auth message.")
		return
	}
	claims, err := c.Hub.Auth.Validate(msg.Token)
	if err != nil {
		slog.Warn("display auth rejected", "tag", "ws", "err", err)
		c.sendError("Invalid or expired token.")
		return
	}

	c.authenticated = true
	c.Name = auth.DisplayNameFromClaims(claims)
	slog.Info("display authenticated", "tag", "ws", "user", auth.SubjectFromClaims(claims), "name", c.Name)

	data, _ := json.Marshal(AuthOKMsg{Type: "auth_ok", Name: c.Name})
	wsutil.SafeSend(c.Send, data)
	c.subscribe()
}

func (c *Client) handleStartMatch(raw json.RawMessage) {
	var msg StartMatchMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid start_match message.")
		return
	}
	if c.Hub.Vocab == nil {
		c.sendError(matcherrors.ErrSourceUnavailable.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), vocabTimeout)
	defer cancel()
	pairs, err := c.Hub.Vocab.Pairs(ctx, msg.ListID)
	if err != nil {
		slog.Warn("loading vocabulary failed", "tag", "ws", "list", msg.ListID, "err", err)
		c.sendError(startErrorMessage(err))
		return
	}

	if err := c.Hub.Host.StartMatch(pairs, msg.DurationSeconds); err != nil {
		c.sendError(startErrorMessage(err))
	}
}

func (c *Client) handleSelectCard(raw json.RawMessage) {
	var msg SelectCardMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid select_card message.")
		return
	}
	if !validSeat(msg.Player) {
		c.sendError("Player must be 1 or 2.")
		return
	}
	c.Hub.Host.SelectCard(msg.Player, msg.CardID)
}

func (c *Client) handleCastSkill(raw json.RawMessage) {
	var msg CastSkillMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid cast_skill message.")
		return
	}
	if !validSeat(msg.Player) {
		c.sendError("Player must be 1 or 2.")
		return
	}
	c.Hub.Host.CastSkill(msg.Player, game.SkillKind(msg.Skill))
}

func (c *Client) sendError(message string) {
	data, _ := json.Marshal(ErrorMsg{Type: "error", Message: message})
	wsutil.SafeSend(c.Send, data)
}

func validSeat(seat int) bool {
	return seat == 1 || seat == 2
}

// startErrorMessage maps start_match failures to display-facing text.
func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, matcherrors.ErrListNotFound):
		return "Vocabulary list not found."
	case errors.Is(err, matcherrors.ErrInsufficientVocabulary):
		return "The vocabulary list has no pairs."
	case errors.Is(err, matcherrors.ErrSessionStopped):
		return "The match host is shutting down."
	default:
		return "Could not start the match."
	}
}

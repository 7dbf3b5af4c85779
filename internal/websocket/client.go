// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/metrics"
	"github.com/tomtom215/soundtrail/internal/selection"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	commandTimeout = 5 * time.Second
)

// clientIDCounter orders clients for broadcasts.
var clientIDCounter atomic.Uint64

// inboundMessage is a message read from a client:
//
//	{"type":"pointer_down","handle":"start"}
//	{"type":"pointer_down","x":120.5}
//	{"type":"pointer_move","x":131}
//	{"type":"pointer_up"}
//	{"type":"ping"}
type inboundMessage struct {
	Type   string   `json:"type"`
	Handle string   `json:"handle,omitempty"`
	X      *float64 `json:"x,omitempty"`
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	id        uint64
	sessionID string
	hub       *Hub
	conn      *websocket.Conn
	send      chan Message

	// mu guards closed. Only the hub closes send, through closeSend.
	mu     sync.RWMutex
	closed bool
}

// NewClient creates a client with a connection-ordered ID and a UUID for logs.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:        clientIDCounter.Add(1),
		sessionID: uuid.New().String(),
		hub:       hub,
		conn:      conn,
		send:      make(chan Message, 256),
	}
}

// ID returns the client's connection-ordered identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// SessionID returns the client's UUID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Send queues a message for this client only. It reports false when the
// send buffer is full or the hub has dropped the client.
func (c *Client) Send(msg Message) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		metrics.RecordWSMessage("out", msg.Type)
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once. The write pump then sends a close
// frame and stops.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump reads client messages until the connection fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		_ = c.conn.Close() // best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Str("client_id", c.sessionID).Msg("unexpected websocket close error")
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.Send(Message{Type: MessageTypeError, Data: ErrorData{Code: "INVALID_MESSAGE", Message: "message must be a JSON object"}})
			continue
		}
		metrics.RecordWSMessage("in", msg.Type)
		c.handle(msg)
	}
}

func (c *Client) handle(msg inboundMessage) {
	switch msg.Type {
	case MessageTypePing:
		c.Send(Message{Type: MessageTypePong})
		return
	case string(selection.EventPointerDown), string(selection.EventPointerMove), string(selection.EventPointerUp):
	default:
		c.Send(Message{Type: MessageTypeError, Data: ErrorData{Code: "INVALID_MESSAGE", Message: "unknown message type " + msg.Type}})
		return
	}

	ev := selection.Event{
		Type:   selection.EventType(msg.Type),
		Handle: calendar.Handle(msg.Handle),
		X:      msg.X,
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// Frames and committed snapshots reach every client through the hub.
	if _, err := c.hub.commands.Drag(ctx, ev); err != nil {
		c.Send(Message{Type: MessageTypeError, Data: ErrorData{Code: selection.ErrorCode(err), Message: err.Error()}})
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Debug().Err(err).Str("client_id", c.sessionID).Msg("failed to write websocket message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/metrics"
	"github.com/tomtom215/soundtrail/internal/selection"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeDashboard = "dashboard"
	MessageTypeDragFrame = "drag_frame"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeError     = "error"
)

// Message is an outbound WebSocket message.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Commands is the part of the selection controller that clients drive.
type Commands interface {
	Drag(ctx context.Context, ev selection.Event) (selection.DragResult, error)
	Snapshot(ctx context.Context) (*selection.Snapshot, error)
}

// Hub maintains the set of active clients and broadcasts dashboard snapshots
// and drag frames to them. It implements selection.Publisher.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	commands   Commands
	mu         sync.RWMutex

	done     chan struct{}
	doneOnce sync.Once
}

// NewHub creates a hub forwarding client drag events to commands.
func NewHub(commands Commands) *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		commands:   commands,
		done:       make(chan struct{}),
	}
}

// Serve runs the hub until ctx is canceled, then closes every client.
// It implements suture.Service.
//
// Pending Register and Unregister events are handled before broadcasts.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// Join registers client. It reports false once the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters client. It returns immediately once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// String implements fmt.Stringer for suture logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Str("client_id", client.SessionID()).Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		client.closeSend()
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Dec()
		logging.Info().Str("client_id", client.SessionID()).Int("total_clients", total).Msg("websocket client disconnected")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.doneOnce.Do(func() { close(h.done) })
	count := h.GetClientCount()
	h.closeAllClients()

	reason := ShutdownReasonContextCanceled
	if ctx.Err() == context.DeadlineExceeded {
		reason = ShutdownReasonContextDeadline
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
}

// sortedClients returns the clients in connection order. Caller holds mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message to every client in connection order.
// Clients whose send buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
			metrics.RecordWSMessage("out", message.Type)
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		client.closeSend()
		delete(h.clients, client)
		metrics.WSConnections.Dec()
		logging.Warn().Str("client_id", client.SessionID()).Msg("dropped slow websocket client")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		client.closeSend()
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
}

// BroadcastJSON queues a message for every connected client.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// PublishSnapshot implements selection.Publisher.
func (h *Hub) PublishSnapshot(snap *selection.Snapshot) {
	h.BroadcastJSON(MessageTypeDashboard, snap)
}

// PublishFrame implements selection.Publisher. Frames are superseded by the
// next move, so a full channel drops them quietly.
func (h *Hub) PublishFrame(frame selection.Frame) {
	select {
	case h.broadcast <- Message{Type: MessageTypeDragFrame, Data: frame}:
	default:
		logging.Debug().Str("handle", string(frame.Handle)).Msg("broadcast channel full, dropping drag frame")
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

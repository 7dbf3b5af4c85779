// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/selection"
)

type fakeCommands struct {
	mu     sync.Mutex
	events []selection.Event
	err    error
}

func (f *fakeCommands) Drag(_ context.Context, ev selection.Event) (selection.DragResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	if f.err != nil {
		return selection.DragResult{}, f.err
	}
	return selection.DragResult{Outcome: selection.OutcomeGrabbed, Handle: ev.Handle}, nil
}

func (f *fakeCommands) Snapshot(context.Context) (*selection.Snapshot, error) {
	return &selection.Snapshot{Version: 7}, nil
}

func (f *fakeCommands) received() []selection.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]selection.Event(nil), f.events...)
}

func runHub(t *testing.T, commands Commands) *Hub {
	t.Helper()
	hub := NewHub(commands)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsSnapshotsAndFrames(t *testing.T) {
	t.Parallel()

	hub := runHub(t, &fakeCommands{})
	a, b := NewClient(hub, nil), NewClient(hub, nil)
	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	if a.ID() >= b.ID() || a.SessionID() == b.SessionID() {
		t.Errorf("client ids %d/%s and %d/%s", a.ID(), a.SessionID(), b.ID(), b.SessionID())
	}

	hub.PublishSnapshot(&selection.Snapshot{Version: 3})
	hub.PublishFrame(selection.Frame{Handle: calendar.HandleEnd, Start: "2024-01-01", End: "2024-01-07"})

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		snap, ok := msg.Data.(*selection.Snapshot)
		if msg.Type != MessageTypeDashboard || !ok || snap.Version != 3 {
			t.Errorf("first message = %+v", msg)
		}
		msg = receive(t, c)
		frame, ok := msg.Data.(selection.Frame)
		if msg.Type != MessageTypeDragFrame || !ok || frame.End != "2024-01-07" {
			t.Errorf("second message = %+v", msg)
		}
	}

	hub.Unregister <- a
	waitForClients(t, hub, 1)
	if _, ok := <-a.send; ok {
		t.Error("unregistered client channel still open")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	t.Parallel()

	hub := runHub(t, &fakeCommands{})
	slow := NewClient(hub, nil)
	hub.Register <- slow
	waitForClients(t, hub, 1)

	for i := 0; i < cap(slow.send); i++ {
		slow.send <- Message{Type: MessageTypePong}
	}
	hub.BroadcastJSON(MessageTypeDashboard, nil)
	waitForClients(t, hub, 0)
}

func TestDroppedClientHandlesLateMessages(t *testing.T) {
	t.Parallel()

	commands := &fakeCommands{err: selection.ErrNotLoaded}
	hub := runHub(t, commands)
	slow := NewClient(hub, nil)
	if !hub.Join(slow) {
		t.Fatal("Join() = false on a running hub")
	}
	waitForClients(t, hub, 1)

	for i := 0; i < cap(slow.send); i++ {
		slow.send <- Message{Type: MessageTypePong}
	}
	hub.BroadcastJSON(MessageTypeDashboard, nil)
	waitForClients(t, hub, 0)

	// The read pump keeps running after the hub drops the client.
	slow.handle(inboundMessage{Type: MessageTypePing})
	slow.handle(inboundMessage{Type: "wave"})
	slow.handle(inboundMessage{Type: string(selection.EventPointerUp)})
	if slow.Send(Message{Type: MessageTypePong}) {
		t.Error("Send() = true after the client was dropped")
	}
	if got := len(commands.received()); got != 1 {
		t.Errorf("drag events forwarded = %d, want 1", got)
	}

	hub.Leave(slow)
	waitForClients(t, hub, 0)
}

func TestHubStoppedJoinAndLeave(t *testing.T) {
	t.Parallel()

	hub := NewHub(&fakeCommands{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx) }()

	c := NewClient(hub, nil)
	if !hub.Join(c) {
		t.Fatal("Join() = false on a running hub")
	}
	waitForClients(t, hub, 1)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("hub did not stop")
	}
	if c.Send(Message{Type: MessageTypePong}) {
		t.Error("Send() = true after shutdown")
	}

	returned := make(chan struct{})
	go func() {
		hub.Leave(c)
		if hub.Join(NewClient(hub, nil)) {
			t.Error("Join() = true on a stopped hub")
		}
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Leave/Join blocked on a stopped hub")
	}
}

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()

	commands := &fakeCommands{}
	hub := runHub(t, commands)

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	read := func() map[string]interface{} {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error = %v", err)
		}
		var msg map[string]interface{}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		return msg
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatal(err)
	}
	if msg := read(); msg["type"] != MessageTypePong {
		t.Errorf("ping reply = %v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pointer_move","x":42.5}`)); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"wave"}`)); err != nil {
		t.Fatal(err)
	}
	msg := read()
	data, _ := msg["data"].(map[string]interface{})
	if msg["type"] != MessageTypeError || data["code"] != "INVALID_MESSAGE" {
		t.Errorf("unknown type reply = %v", msg)
	}

	events := commands.received()
	if len(events) != 1 || events[0].Type != selection.EventPointerMove || events[0].X == nil || *events[0].X != 42.5 {
		t.Errorf("forwarded events = %+v", events)
	}

	commands.mu.Lock()
	commands.err = selection.ErrNotLoaded
	commands.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pointer_down","handle":"start"}`)); err != nil {
		t.Fatal(err)
	}
	msg = read()
	data, _ = msg["data"].(map[string]interface{})
	if msg["type"] != MessageTypeError || data["code"] != selection.CodeDatasetLoading {
		t.Errorf("error reply = %v", msg)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/live-poll/models"
)

// Hub fans events out to every attached connection
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func New() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Attach registers a connection under a fresh id.
// The caller runs WritePump and ReadPump.
func (h *Hub) Attach(conn *websocket.Conn) *Client {
	c := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	return c
}

// Detach forgets a connection and closes its queue.
// Frames already queued are still written. Safe to call more than once.
func (h *Hub) Detach(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	close(c.send)
}

// Disconnect is Detach under the name the session expects
func (h *Hub) Disconnect(connID string) {
	h.Detach(connID)
}

// EmitToAll queues the event for every connection attached right now
func (h *Hub) EmitToAll(event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		slog.Error("failed to encode event", "event", event, "error", err)
		return
	}

	var slow []string
	h.mu.RLock()
	for id, c := range h.clients {
		if !c.enqueue(frame) {
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		slog.Warn("dropping slow client", "conn_id", id, "event", event)
		h.Detach(id)
	}
}

// EmitToOne queues the event for a single connection, if still attached
func (h *Hub) EmitToOne(connID, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		slog.Error("failed to encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	queued := ok && c.enqueue(frame)
	h.mu.RUnlock()

	if ok && !queued {
		slog.Warn("dropping slow client", "conn_id", connID, "event", event)
		h.Detach(connID)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close detaches every connection
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func encodeFrame(event string, payload any) ([]byte, error) {
	env := models.Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

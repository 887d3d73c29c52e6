// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/live-poll/hub"
	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/session"
)

type SocketHandler struct {
	hub      *hub.Hub
	session  *session.Session
	upgrader websocket.Upgrader
}

func NewSocketHandler(h *hub.Hub, s *session.Session) *SocketHandler {
	return &SocketHandler{
		hub:     h,
		session: s,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// any origin, like the HTTP CORS policy
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws
// Blocks for the lifetime of the connection
func (h *SocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	remote := middleware.GetClientIP(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an HTTP error
		slog.Warn("websocket upgrade failed", "remote", remote, "error", err)
		return
	}

	client := h.hub.Attach(conn)
	go client.WritePump()

	slog.Info("client connected", "conn_id", client.ID, "remote", remote, "clients", h.hub.Count())
	h.hub.EmitToOne(client.ID, models.EventConnected, models.ConnectedPayload{ID: client.ID})

	err = client.ReadPump(func(event string, data json.RawMessage) {
		h.session.Handle(client.ID, event, data)
	})
	if err != nil {
		slog.Warn("connection closed unexpectedly", "conn_id", client.ID, "error", err)
	}

	h.hub.Detach(client.ID)
	h.session.Disconnect(client.ID)

	slog.Info("client disconnected", "conn_id", client.ID, "clients", h.hub.Count())
}

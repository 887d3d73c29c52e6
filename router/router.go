// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/live-poll/archive"
	"github.com/danielhkuo/live-poll/handlers"
	"github.com/danielhkuo/live-poll/hub"
	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/session"
)

// Liveness is the body served at GET /
const Liveness = "live poll backend is running"

// NewRouter wires the routes. arch may be nil when archiving is disabled.
func NewRouter(sess *session.Session, h *hub.Hub, arch *archive.Archive) *http.ServeMux {
	mux := http.NewServeMux()

	socketHandler := handlers.NewSocketHandler(h, sess)
	historyHandler := handlers.NewHistoryHandler(sess, arch)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Realtime channel
	mux.HandleFunc("GET /ws", middleware.WithLogging(socketHandler.Serve))

	// Closed polls
	mux.HandleFunc("GET /history", middleware.WithLogging(historyHandler.GetHistory))
	mux.HandleFunc("GET /archive", middleware.WithLogging(historyHandler.GetArchive))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Liveness))
	})

	return mux
}

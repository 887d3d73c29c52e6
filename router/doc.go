// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes using Go 1.22+ enhanced routing.

# Routes

	GET /          liveness string
	GET /health    "OK"
	GET /ws        WebSocket upgrade, see package handlers
	GET /history   in-memory poll history
	GET /archive   archived polls (404 unless a database is configured)

Everything except / and /health is wrapped with middleware.WithLogging.
CORS is applied by the caller around the whole mux.

# Usage

	mux := router.NewRouter(sess, hub, arch)
	server := http.Server{Handler: middleware.CORS(mux), Addr: ":4000"}
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /history", middleware.WithLogging(handler))

Logs request start at debug level and completion (duration_ms) at info.
Upgraded WebSocket requests are flagged with upgrade=true; their duration
is the lifetime of the socket.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Echoes the request origin (or "*") and answers OPTIONS preflights with 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For and X-Real-IP. Only used for logging.
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/live-poll/archive"
	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/session"
)

const (
	defaultArchiveLimit = 50
	maxArchiveLimit     = 500
)

type HistoryHandler struct {
	session *session.Session
	archive *archive.Archive
}

// NewHistoryHandler creates the handler. archive is nil when disabled.
func NewHistoryHandler(s *session.Session, a *archive.Archive) *HistoryHandler {
	return &HistoryHandler{session: s, archive: a}
}

// GetHistory handles GET /history
// Returns the in-memory history, oldest first
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.session.History(r.Context())
	if err != nil {
		slog.Error("failed to read history", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Session unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetArchive handles GET /archive?limit=N
// Returns archived summaries, newest first
func (h *HistoryHandler) GetArchive(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Archive is not enabled")
		return
	}

	limit := defaultArchiveLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxArchiveLimit)
	}

	list, err := h.archive.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to query archive", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"slices"

	"github.com/danielhkuo/live-poll/models"
)

// HistoryLimit is the number of closed polls kept in memory
const HistoryLimit = 20

// History is an oldest-first log of closed polls, capped at its limit
type History struct {
	limit   int
	entries []models.PollSummary
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

// Append adds a summary, evicting the oldest entries past the limit
func (h *History) Append(summary models.PollSummary) {
	h.entries = append(h.entries, summary)
	if over := len(h.entries) - h.limit; over > 0 {
		n := copy(h.entries, h.entries[over:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
}

// List returns a copy of the log, oldest first
func (h *History) List() []models.PollSummary {
	if len(h.entries) == 0 {
		return []models.PollSummary{}
	}
	return slices.Clone(h.entries)
}

func (h *History) Len() int {
	return len(h.entries)
}

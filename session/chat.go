// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"cmp"
	"strings"

	"github.com/danielhkuo/live-poll/models"
)

// DefaultChatName labels messages sent without a name
const DefaultChatName = "User"

// relayChat broadcasts a chat line to everyone, sender included.
// Blank messages are dropped. Nothing is kept after the broadcast.
func (s *Session) relayChat(msg models.ChatMessage) bool {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return false
	}

	out := models.ChatMessage{
		From: cmp.Or(msg.From, DefaultChatName),
		Role: cmp.Or(msg.Role, models.RoleStudent),
		Text: text,
		TS:   msg.TS,
	}
	if out.TS == 0 {
		out.TS = s.now().UnixMilli()
	}

	s.bus.EmitToAll(models.EventChatMessage, out)
	return true
}

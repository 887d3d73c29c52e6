// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"encoding/json"
	"log/slog"

	"github.com/danielhkuo/live-poll/models"
)

const msgInvalidRequest = "Invalid request."

// Handle queues a client event for the loop.
// It returns false once the session has stopped.
func (s *Session) Handle(connID, event string, data json.RawMessage) bool {
	return s.post(func() { s.dispatch(connID, event, data) })
}

func (s *Session) dispatch(connID, event string, data json.RawMessage) {
	// frames already in flight when the kick closed the socket
	if _, ok := s.kicked[connID]; ok {
		slog.Debug("event from kicked connection dropped", "conn_id", connID, "event", event)
		return
	}

	switch event {
	case models.EventRegister:
		var req models.RegisterRequest
		if err := decodePayload(data, &req); err != nil {
			slog.Warn("invalid register payload", "conn_id", connID, "error", err)
			return
		}
		s.register(connID, req)

	case models.EventCreatePoll:
		var req models.CreatePollRequest
		if err := decodePayload(data, &req); err != nil {
			slog.Warn("invalid createPoll payload", "conn_id", connID, "error", err)
			s.bus.EmitToOne(connID, models.EventErrorMessage, msgInvalidRequest)
			return
		}
		if err := s.createPoll(connID, req); err != nil {
			slog.Info("poll rejected", "conn_id", connID, "error", err)
		}

	case models.EventSubmitAnswer:
		var req models.SubmitAnswerRequest
		if err := decodePayload(data, &req); err != nil {
			slog.Debug("invalid submitAnswer payload", "conn_id", connID, "error", err)
			return
		}
		idx := -1
		if req.OptionIndex != nil {
			idx = *req.OptionIndex
		}
		if !s.submitAnswer(connID, idx) {
			slog.Debug("answer ignored", "conn_id", connID)
		}

	case models.EventKickStudent:
		var req models.KickStudentRequest
		if err := decodePayload(data, &req); err != nil {
			slog.Debug("invalid kickStudent payload", "conn_id", connID, "error", err)
			return
		}
		if !s.kick(req.TargetID) {
			slog.Debug("kick ignored", "conn_id", connID, "target", req.TargetID)
		}

	case models.EventSendChatMessage:
		var msg models.ChatMessage
		if err := decodePayload(data, &msg); err != nil {
			slog.Debug("invalid chat payload", "conn_id", connID, "error", err)
			return
		}
		s.relayChat(msg)

	case models.EventRequestHistory:
		s.sendHistory(connID)

	default:
		slog.Debug("unknown event", "conn_id", connID, "event", event)
	}
}

// decodePayload treats a missing payload as an empty object
func decodePayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the socket protocol and domain types.

# Envelope

Every WebSocket frame, in both directions, is a JSON envelope:

	{"event": "submitAnswer", "data": {"optionIndex": 1}}

# Client Events

Payload types for incoming events:

  - register: RegisterRequest (name, role)
  - createPoll: CreatePollRequest (question, options, durationSec)
  - submitAnswer: SubmitAnswerRequest (optionIndex)
  - kickStudent: KickStudentRequest (targetId)
  - sendChatMessage: ChatMessage (from, role, text, ts)
  - requestHistory: no payload

# Server Events

  - connected: ConnectedPayload, sent once right after the upgrade
  - participants: []ParticipantEntry
  - studentCount: StudentCountPayload
  - pollStarted: PollStartedPayload
  - answerUpdate: AnswerUpdatePayload
  - pollEnded: PollSummary
  - pollHistory: []PollSummary
  - chatMessage: ChatMessage
  - kicked: no payload, followed by a server-side close
  - errorMessage: string

# Timestamps

endsAt, createdAt, closedAt and ts are milliseconds since the Unix epoch.

# Constants

Roles:

	RoleTeacher = "teacher"
	RoleStudent = "student"
*/
package models

package models

import "encoding/json"

// Participant roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Client -> server events
const (
	EventRegister        = "register"
	EventCreatePoll      = "createPoll"
	EventSubmitAnswer    = "submitAnswer"
	EventKickStudent     = "kickStudent"
	EventSendChatMessage = "sendChatMessage"
	EventRequestHistory  = "requestHistory"
)

// Server -> client events
const (
	EventConnected    = "connected"
	EventParticipants = "participants"
	EventStudentCount = "studentCount"
	EventPollStarted  = "pollStarted"
	EventAnswerUpdate = "answerUpdate"
	EventPollEnded    = "pollEnded"
	EventPollHistory  = "pollHistory"
	EventChatMessage  = "chatMessage"
	EventKicked       = "kicked"
	EventErrorMessage = "errorMessage"
)

// Envelope wraps every frame on the socket in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Request types

type RegisterRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type CreatePollRequest struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	DurationSec float64  `json:"durationSec"`
}

// nil OptionIndex is kept as an answer that matches no option
type SubmitAnswerRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

type KickStudentRequest struct {
	TargetID string `json:"targetId"`
}

// Also used as the outgoing chatMessage payload
type ChatMessage struct {
	From string `json:"from"`
	Role string `json:"role"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Response types

type ConnectedPayload struct {
	ID string `json:"id"`
}

type ParticipantEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StudentCountPayload struct {
	TotalStudents int `json:"totalStudents"`
}

type PollStartedPayload struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	EndsAt        int64    `json:"endsAt"`
	TotalStudents int      `json:"totalStudents"`
	AnsweredCount int      `json:"answeredCount"`
}

type AnswerUpdatePayload struct {
	AnsweredCount int `json:"answeredCount"`
	TotalStudents int `json:"totalStudents"`
}

// Domain types

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PollSummary is the immutable record of a closed poll
type PollSummary struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Results       []int    `json:"results"`
	CreatedAt     int64    `json:"createdAt"`
	ClosedAt      int64    `json:"closedAt"`
	TotalStudents int      `json:"totalStudents"`
	AnsweredCount int      `json:"answeredCount"`
}

// ArchivedSummary is a PollSummary as stored by the archive
type ArchivedSummary struct {
	ArchiveID string      `json:"archive_id"`
	Summary   PollSummary `json:"summary"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

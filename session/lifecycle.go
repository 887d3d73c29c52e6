// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/live-poll/models"
)

const (
	DefaultPollDuration = 60 * time.Second
	MaxPollDuration     = 24 * time.Hour
)

// Messages sent to the requester on rejection
const (
	msgPollRunning = "A poll is already running."
	msgInvalidPoll = "Question and at least two options are required."
)

var (
	ErrPollRunning = errors.New("a poll is already running")
	ErrInvalidPoll = errors.New("question and at least two options are required")
)

type poll struct {
	id        int
	question  string
	options   []string
	answers   map[string]int // conn id -> option index
	createdAt time.Time
	endsAt    time.Time
}

// createPoll opens a poll if none is active.
// Rejections go to the requester only.
func (s *Session) createPoll(connID string, req models.CreatePollRequest) error {
	if s.active != nil {
		s.bus.EmitToOne(connID, models.EventErrorMessage, msgPollRunning)
		return ErrPollRunning
	}

	question := strings.TrimSpace(req.Question)
	options := cleanOptions(req.Options)
	if question == "" || len(options) < 2 {
		s.bus.EmitToOne(connID, models.EventErrorMessage, msgInvalidPoll)
		return ErrInvalidPoll
	}

	duration := pollDuration(req.DurationSec)
	now := s.now()

	s.nextPollID++
	p := &poll{
		id:        s.nextPollID,
		question:  question,
		options:   options,
		answers:   make(map[string]int),
		createdAt: now,
		endsAt:    now.Add(duration),
	}
	s.active = p

	s.stopTimer()
	pollID := p.id
	s.timer = s.schedule(duration, func() {
		s.post(func() { s.expire(pollID) })
	})

	slog.Info("poll started",
		"poll_id", p.id,
		"options", len(p.options),
		"ends", humanize.Time(p.endsAt),
	)

	snapshot, _ := s.snapshotForNewcomer()
	s.bus.EmitToAll(models.EventPollStarted, snapshot)
	return nil
}

// submitAnswer records a student's first answer. Anything else is dropped.
// The index is stored as given; range checks happen in ComputeResults.
func (s *Session) submitAnswer(connID string, optionIndex int) bool {
	if s.active == nil {
		return false
	}
	if !s.registry.IsStudent(connID) {
		return false
	}
	if _, answered := s.active.answers[connID]; answered {
		return false
	}

	s.active.answers[connID] = optionIndex
	answered := len(s.active.answers)
	total := s.registry.Count()

	s.bus.EmitToAll(models.EventAnswerUpdate, models.AnswerUpdatePayload{
		AnsweredCount: answered,
		TotalStudents: total,
	})

	if answered == total && total > 0 {
		s.closePoll("all answered")
	}
	return true
}

// expire is the timer path. A timer armed for an earlier poll does nothing.
func (s *Session) expire(pollID int) {
	if s.active == nil || s.active.id != pollID {
		slog.Debug("stale poll timer ignored", "poll_id", pollID)
		return
	}
	s.closePoll("timeout")
}

// closePoll turns the active poll into a summary. No-op when idle.
func (s *Session) closePoll(reason string) {
	p := s.active
	if p == nil {
		return
	}

	summary := models.PollSummary{
		ID:            p.id,
		Question:      p.question,
		Options:       slices.Clone(p.options),
		Results:       ComputeResults(p.options, p.answers),
		CreatedAt:     p.createdAt.UnixMilli(),
		ClosedAt:      s.now().UnixMilli(),
		TotalStudents: s.registry.Count(),
		AnsweredCount: len(p.answers),
	}

	s.history.Append(summary)
	s.stopTimer()
	s.active = nil

	slog.Info("poll closed",
		"poll_id", summary.ID,
		"reason", reason,
		"answered", summary.AnsweredCount,
		"total", summary.TotalStudents,
	)

	s.bus.EmitToAll(models.EventPollEnded, summary)
	s.bus.EmitToAll(models.EventPollHistory, s.history.List())

	if s.archive != nil {
		s.archive.Record(summary)
	}
}

// forgetAnswer drops a departed participant's answer from the active poll.
// It never closes the poll, even when everyone left has answered.
func (s *Session) forgetAnswer(connID string) bool {
	if s.active == nil {
		return false
	}
	if _, ok := s.active.answers[connID]; !ok {
		return false
	}
	delete(s.active.answers, connID)
	return true
}

func (s *Session) broadcastProgress() {
	if s.active == nil {
		return
	}
	s.bus.EmitToAll(models.EventAnswerUpdate, models.AnswerUpdatePayload{
		AnsweredCount: len(s.active.answers),
		TotalStudents: s.registry.Count(),
	})
}

// snapshotForNewcomer describes the active poll for a late joiner
func (s *Session) snapshotForNewcomer() (models.PollStartedPayload, bool) {
	p := s.active
	if p == nil {
		return models.PollStartedPayload{}, false
	}
	return models.PollStartedPayload{
		Question:      p.question,
		Options:       slices.Clone(p.options),
		EndsAt:        p.endsAt.UnixMilli(),
		TotalStudents: s.registry.Count(),
		AnsweredCount: len(p.answers),
	}, true
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func cleanOptions(raw []string) []string {
	options := make([]string, 0, len(raw))
	for _, o := range raw {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	return options
}

func pollDuration(seconds float64) time.Duration {
	if seconds <= 0 || math.IsNaN(seconds) {
		return DefaultPollDuration
	}
	if seconds >= MaxPollDuration.Seconds() {
		return MaxPollDuration
	}
	return time.Duration(seconds * float64(time.Second))
}

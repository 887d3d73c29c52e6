// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/live-poll/models"
)

var ErrStopped = errors.New("session stopped")

const inboxSize = 256

// Broadcaster delivers events to connected parties
type Broadcaster interface {
	EmitToAll(event string, payload any)
	EmitToOne(connID, event string, payload any)
	// Disconnect flushes what is already queued for the connection, then closes it
	Disconnect(connID string)
}

// Archiver receives every closed poll. Record must not block.
type Archiver interface {
	Record(summary models.PollSummary)
}

type Timer interface {
	Stop() bool
}

// Scheduler arms fn to run once after d
type Scheduler func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Session is the state of the classroom: roster, active poll and history.
// All state is touched only from the goroutine running Run.
type Session struct {
	bus     Broadcaster
	archive Archiver

	now      func() time.Time
	schedule Scheduler

	registry *Registry
	history  *History

	active     *poll
	timer      Timer
	nextPollID int

	// kicked connections whose sockets have not closed yet
	kicked map[string]struct{}

	inbox chan func()
	done  chan struct{}
}

// New creates a session. archive may be nil.
func New(bus Broadcaster, archive Archiver) *Session {
	return &Session{
		bus:      bus,
		archive:  archive,
		now:      time.Now,
		schedule: afterFunc,
		registry: NewRegistry(),
		history:  NewHistory(HistoryLimit),
		kicked:   make(map[string]struct{}),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
	}
}

// Run executes queued work one item at a time until ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	slog.Info("session loop started")
	for {
		select {
		case fn := <-s.inbox:
			fn()
		case <-ctx.Done():
			s.stopTimer()
			slog.Info("session loop stopped")
			return ctx.Err()
		}
	}
}

// post queues fn for the loop; false once the loop has stopped
func (s *Session) post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.inbox <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Disconnect removes a connection's participant, if any
func (s *Session) Disconnect(connID string) bool {
	return s.post(func() { s.disconnect(connID) })
}

// History returns the in-memory history as seen by the loop
func (s *Session) History(ctx context.Context) ([]models.PollSummary, error) {
	reply := make(chan []models.PollSummary, 1)
	if !s.post(func() { reply <- s.history.List() }) {
		return nil, ErrStopped
	}

	select {
	case list := <-reply:
		return list, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrStopped
	}
}

func (s *Session) register(connID string, req models.RegisterRequest) {
	wasStudent := s.registry.IsStudent(connID)
	if s.registry.Register(connID, req.Name, req.Role) {
		s.broadcastRoster()
	}
	slog.Info("participant registered", "conn_id", connID, "role", req.Role)

	// a student turning teacher takes their answer with them
	if wasStudent && req.Role != models.RoleStudent && s.forgetAnswer(connID) {
		s.broadcastProgress()
	}

	if snapshot, ok := s.snapshotForNewcomer(); ok {
		s.bus.EmitToOne(connID, models.EventPollStarted, snapshot)
	}
	s.bus.EmitToOne(connID, models.EventPollHistory, s.history.List())
}

func (s *Session) disconnect(connID string) {
	delete(s.kicked, connID)

	if s.registry.Remove(connID) {
		s.broadcastRoster()
	}

	if s.forgetAnswer(connID) {
		s.broadcastProgress()
	}

	slog.Debug("connection left", "conn_id", connID)
}

// kick removes a student on request. Unknown targets are ignored.
func (s *Session) kick(targetID string) bool {
	if !s.registry.IsStudent(targetID) {
		return false
	}

	s.bus.EmitToOne(targetID, models.EventKicked, nil)
	s.bus.Disconnect(targetID)
	s.kicked[targetID] = struct{}{}

	s.registry.Remove(targetID)
	s.bus.EmitToAll(models.EventParticipants, s.registry.Students())
	s.forgetAnswer(targetID)
	s.bus.EmitToAll(models.EventStudentCount, models.StudentCountPayload{TotalStudents: s.registry.Count()})
	if s.active != nil {
		s.broadcastProgress()
	}

	slog.Info("student kicked", "conn_id", targetID)
	return true
}

func (s *Session) sendHistory(connID string) {
	s.bus.EmitToOne(connID, models.EventPollHistory, s.history.List())
}

func (s *Session) broadcastRoster() {
	s.bus.EmitToAll(models.EventParticipants, s.registry.Students())
	s.bus.EmitToAll(models.EventStudentCount, models.StudentCountPayload{TotalStudents: s.registry.Count()})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/testutil"
)

var testNow = time.UnixMilli(1_700_000_000_000)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	wasActive := !f.stopped
	f.stopped = true
	return wasActive
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (fs *fakeScheduler) schedule(d time.Duration, fn func()) Timer {
	t := &fakeTimer{d: d, fn: fn}
	fs.timers = append(fs.timers, t)
	return t
}

type fakeArchive struct {
	recorded []models.PollSummary
}

func (f *fakeArchive) Record(summary models.PollSummary) {
	f.recorded = append(f.recorded, summary)
}

// newTestSession returns a session with a fixed clock and manual timers.
// Tests drive it from their own goroutine instead of Run.
func newTestSession(t *testing.T) (*Session, *testutil.Recorder, *fakeScheduler) {
	t.Helper()

	rec := testutil.NewRecorder()
	s := New(rec, nil)

	sched := &fakeScheduler{}
	s.schedule = sched.schedule
	s.now = func() time.Time { return testNow }

	return s, rec, sched
}

// drain runs whatever has been queued for the loop
func drain(s *Session) {
	for {
		select {
		case fn := <-s.inbox:
			fn()
		default:
			return
		}
	}
}

func joinStudent(s *Session, id, name string) {
	s.register(id, models.RegisterRequest{Name: name, Role: models.RoleStudent})
}

func joinTeacher(s *Session, id string) {
	s.register(id, models.RegisterRequest{Name: "Teacher", Role: models.RoleTeacher})
}

func startPoll(t *testing.T, s *Session, options ...string) {
	t.Helper()
	require.NoError(t, s.createPoll("teacher", models.CreatePollRequest{
		Question:    "Q",
		Options:     options,
		DurationSec: 30,
	}))
}

func lastSummary(t *testing.T, rec *testutil.Recorder) models.PollSummary {
	t.Helper()
	e, ok := rec.Last(models.EventPollEnded)
	require.True(t, ok, "expected a pollEnded event")
	return e.Payload.(models.PollSummary)
}

func lastProgress(t *testing.T, rec *testutil.Recorder) models.AnswerUpdatePayload {
	t.Helper()
	e, ok := rec.Last(models.EventAnswerUpdate)
	require.True(t, ok, "expected an answerUpdate event")
	return e.Payload.(models.AnswerUpdatePayload)
}

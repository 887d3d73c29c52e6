// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/testutil"
)

func TestRegisterStudentBroadcastsRoster(t *testing.T) {
	s, rec, _ := newTestSession(t)

	joinStudent(s, "s1", "Sam")

	events := rec.Events()
	require.Len(t, events, 3)

	assert.Equal(t, testutil.Event{
		Name:    models.EventParticipants,
		Payload: []models.ParticipantEntry{{ID: "s1", Name: "Sam"}},
	}, events[0])
	assert.Equal(t, testutil.Event{
		Name:    models.EventStudentCount,
		Payload: models.StudentCountPayload{TotalStudents: 1},
	}, events[1])
	assert.Equal(t, testutil.Event{
		To:      "s1",
		Name:    models.EventPollHistory,
		Payload: []models.PollSummary{},
	}, events[2])
}

func TestRegisterTeacherOnlyGetsHistory(t *testing.T) {
	s, rec, _ := newTestSession(t)

	joinTeacher(s, "t1")

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "t1", events[0].To)
	assert.Equal(t, models.EventPollHistory, events[0].Name)
}

func TestNewcomerGetsRunningPoll(t *testing.T) {
	s, rec, _ := newTestSession(t)
	joinStudent(s, "s1", "S1")
	startPoll(t, s, "A", "B")
	rec.Reset()

	joinStudent(s, "s2", "S2")

	var started *testutil.Event
	for _, e := range rec.Events() {
		if e.Name == models.EventPollStarted {
			started = &e
		}
	}
	require.NotNil(t, started)
	assert.Equal(t, "s2", started.To)

	payload := started.Payload.(models.PollStartedPayload)
	assert.Equal(t, []string{"A", "B"}, payload.Options)
	assert.Equal(t, 2, payload.TotalStudents)
	assert.Equal(t, testNow.Add(30*time.Second).UnixMilli(), payload.EndsAt)
}

func TestNewcomerSnapshotWhenIdle(t *testing.T) {
	s, _, _ := newTestSession(t)
	_, ok := s.snapshotForNewcomer()
	assert.False(t, ok)
}

func TestStudentBecomingTeacherLeavesRoster(t *testing.T) {
	s, rec, _ := newTestSession(t)
	joinStudent(s, "s1", "S1")
	joinStudent(s, "s2", "S2")
	startPoll(t, s, "A", "B")
	require.True(t, s.submitAnswer("s1", 0))
	rec.Reset()

	joinTeacher(s, "s1")

	assert.Equal(t, models.AnswerUpdatePayload{AnsweredCount: 0, TotalStudents: 1}, lastProgress(t, rec))
	e, _ := rec.Last(models.EventStudentCount)
	assert.Equal(t, models.StudentCountPayload{TotalStudents: 1}, e.Payload)
}

func TestTeacherDisconnectIsSilent(t *testing.T) {
	s, rec, _ := newTestSession(t)
	joinTeacher(s, "t1")
	joinStudent(s, "s1", "S1")
	startPoll(t, s, "A", "B")
	rec.Reset()

	s.disconnect("t1")

	assert.Empty(t, rec.Events())
	assert.NotNil(t, s.active, "teacher leaving does not cancel the poll")
}

func TestRequestHistoryGoesToRequester(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.sendHistory("t1")

	e, ok := rec.Last(models.EventPollHistory)
	require.True(t, ok)
	assert.Equal(t, "t1", e.To)
}

func TestRunProcessesEventsAndRealTimer(t *testing.T) {
	rec := testutil.NewRecorder()
	s := New(rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	require.True(t, s.Handle("s1", models.EventRegister, json.RawMessage(`{"name":"Sam","role":"student"}`)))
	require.True(t, s.Handle("t1", models.EventCreatePoll,
		json.RawMessage(`{"question":"Q","options":["A","B"],"durationSec":0.05}`)))

	require.Eventually(t, func() bool {
		_, ok := rec.Last(models.EventPollEnded)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, []int{0, 0}, history[0].Results)
	assert.Equal(t, 1, history[0].TotalStudents)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	assert.False(t, s.Handle("s1", models.EventRequestHistory, nil))
	assert.False(t, s.Disconnect("s1"))
	_, err = s.History(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
}

func TestRunStopsPendingTimer(t *testing.T) {
	rec := testutil.NewRecorder()
	s := New(rec, nil)
	sched := &fakeScheduler{}
	s.schedule = sched.schedule

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	require.True(t, s.Handle("t1", models.EventCreatePoll,
		json.RawMessage(`{"question":"Q","options":["A","B"],"durationSec":30}`)))
	require.Eventually(t, func() bool {
		_, ok := rec.Last(models.EventPollStarted)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-errCh

	require.Len(t, sched.timers, 1)
	assert.True(t, sched.timers[0].stopped)
}

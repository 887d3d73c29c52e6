// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/live-poll/archive"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/session"
	"github.com/danielhkuo/live-poll/testutil"
)

func runningSession(t *testing.T) *session.Session {
	t.Helper()

	sess := session.New(testutil.NewRecorder(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		sess.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return sess
}

func filledArchive(t *testing.T, n int) *archive.Archive {
	t.Helper()

	a := archive.New(testutil.SetupTestDB(t))
	for i := 1; i <= n; i++ {
		a.Record(models.PollSummary{
			ID:       i,
			Question: "Q",
			Options:  []string{"A", "B"},
			Results:  []int{i, 0},
			ClosedAt: int64(1_700_000_000_000 + i),
		})
	}
	// flushes the queue; Recent still works on the open db
	a.Close()
	return a
}

func TestGetHistoryEmpty(t *testing.T) {
	h := NewHistoryHandler(runningSession(t), nil)

	w := httptest.NewRecorder()
	h.GetHistory(w, testutil.MakeRequest("GET", "/history", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var list []models.PollSummary
	testutil.AssertJSON(t, w, &list)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetHistoryStoppedSession(t *testing.T) {
	sess := session.New(testutil.NewRecorder(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess.Run(ctx)

	h := NewHistoryHandler(sess, nil)
	w := httptest.NewRecorder()
	h.GetHistory(w, testutil.MakeRequest("GET", "/history", nil, nil))

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

func TestGetArchiveDisabled(t *testing.T) {
	h := NewHistoryHandler(runningSession(t), nil)

	w := httptest.NewRecorder()
	h.GetArchive(w, testutil.MakeRequest("GET", "/archive", nil, nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetArchive(t *testing.T) {
	h := NewHistoryHandler(runningSession(t), filledArchive(t, 3))

	tests := []struct {
		name    string
		path    string
		status  int
		wantIDs []int
	}{
		{"default limit", "/archive", http.StatusOK, []int{3, 2, 1}},
		{"explicit limit", "/archive?limit=2", http.StatusOK, []int{3, 2}},
		{"limit above max is clamped", "/archive?limit=100000", http.StatusOK, []int{3, 2, 1}},
		{"zero limit", "/archive?limit=0", http.StatusBadRequest, nil},
		{"negative limit", "/archive?limit=-4", http.StatusBadRequest, nil},
		{"non-numeric limit", "/archive?limit=lots", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetArchive(w, testutil.MakeRequest("GET", tt.path, nil, nil))

			testutil.AssertStatus(t, w, tt.status)
			if tt.status != http.StatusOK {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				assert.NotEmpty(t, resp.Message)
				return
			}

			var list []models.ArchivedSummary
			testutil.AssertJSON(t, w, &list)
			require.Len(t, list, len(tt.wantIDs))
			for i, id := range tt.wantIDs {
				assert.Equal(t, id, list[i].Summary.ID)
				assert.NotEmpty(t, list[i].ArchiveID)
			}
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/testutil"
)

func summary(id int, closedAt int64) models.PollSummary {
	return models.PollSummary{
		ID:            id,
		Question:      "Which planet is largest?",
		Options:       []string{"Mars", "Jupiter", "Venus"},
		Results:       []int{0, 2, 1},
		CreatedAt:     closedAt - 30_000,
		ClosedAt:      closedAt,
		TotalStudents: 4,
		AnsweredCount: 3,
	}
}

func TestRecordThenRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db)

	a.Record(summary(1, 1_700_000_000_000))
	a.Record(summary(2, 1_700_000_060_000))
	a.Close()

	list, err := a.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// newest first
	assert.Equal(t, 2, list[0].Summary.ID)
	assert.Equal(t, 1, list[1].Summary.ID)
	assert.NotEmpty(t, list[0].ArchiveID)
	assert.NotEqual(t, list[0].ArchiveID, list[1].ArchiveID)

	assert.Equal(t, summary(2, 1_700_000_060_000), list[0].Summary)
}

func TestRecentRespectsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db)

	for i := 1; i <= 5; i++ {
		a.Record(summary(i, int64(1_700_000_000_000+i)))
	}
	a.Close()

	list, err := a.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{5, 4, 3}, []int{list[0].Summary.ID, list[1].Summary.ID, list[2].Summary.ID})

	_, err = a.Recent(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestRecentEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db)
	defer a.Close()

	list, err := a.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRecordAfterCloseIsDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db)
	a.Close()
	a.Close() // idempotent

	assert.NotPanics(t, func() { a.Record(summary(1, 1_700_000_000_000)) })

	list, err := a.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInsertFailureIsLoggedNotFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, err := db.Exec(`DROP TABLE poll_summary`)
	require.NoError(t, err)

	a := New(db)
	a.Record(summary(1, 1_700_000_000_000))
	a.Close()

	_, err = a.Recent(context.Background(), 10)
	assert.Error(t, err)
}

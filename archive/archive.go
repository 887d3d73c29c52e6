// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-poll/models"
)

var ErrInvalidLimit = errors.New("limit must be positive")

const (
	queueSize     = 64
	insertTimeout = 5 * time.Second
)

// Archive writes closed poll summaries to the database behind the event loop
type Archive struct {
	db    *sql.DB
	queue chan models.PollSummary
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts the background writer. Call Close to flush it.
func New(db *sql.DB) *Archive {
	a := &Archive{
		db:    db,
		queue: make(chan models.PollSummary, queueSize),
	}

	a.wg.Add(1)
	go a.worker()

	return a
}

// Record queues a summary without blocking. A full queue drops it.
func (a *Archive) Record(summary models.PollSummary) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		slog.Warn("archive closed, summary dropped", "poll_id", summary.ID)
		return
	}

	select {
	case a.queue <- summary:
	default:
		slog.Warn("archive queue full, summary dropped", "poll_id", summary.ID)
	}
}

// Close stops accepting summaries and waits for queued ones to be written
func (a *Archive) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Archive) worker() {
	defer a.wg.Done()

	for summary := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		archiveID, err := a.insert(ctx, summary)
		cancel()

		if err != nil {
			slog.Error("failed to archive poll", "poll_id", summary.ID, "error", err)
			continue
		}
		slog.Info("poll archived", "poll_id", summary.ID, "archive_id", archiveID)
	}
}

func (a *Archive) insert(ctx context.Context, summary models.PollSummary) (string, error) {
	options, err := json.Marshal(summary.Options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	results, err := json.Marshal(summary.Results)
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	archiveID := uuid.NewString()
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO poll_summary (id, poll_number, question, options, results,
		                          total_students, answered_count, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, archiveID, summary.ID, summary.Question, string(options), string(results),
		summary.TotalStudents, summary.AnsweredCount, summary.CreatedAt, summary.ClosedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert poll summary: %w", err)
	}

	return archiveID, nil
}

// Recent returns up to limit archived summaries, newest first
func (a *Archive) Recent(ctx context.Context, limit int) ([]models.ArchivedSummary, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, poll_number, question, options, results,
		       total_students, answered_count, created_at, closed_at
		FROM poll_summary
		ORDER BY closed_at DESC, poll_number DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll summaries: %w", err)
	}
	defer rows.Close()

	list := []models.ArchivedSummary{}
	for rows.Next() {
		var row models.ArchivedSummary
		var options, results string
		s := &row.Summary
		if err := rows.Scan(&row.ArchiveID, &s.ID, &s.Question, &options, &results,
			&s.TotalStudents, &s.AnsweredCount, &s.CreatedAt, &s.ClosedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll summary: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &s.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}
		if err := json.Unmarshal([]byte(results), &s.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poll summaries: %w", err)
	}

	return list, nil
}

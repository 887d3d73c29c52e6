// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names registered by the blank imports in main
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the archive database and verifies the connection.
// dbType is "postgres" or "sqlite".
func Open(dbType, url string) (*sql.DB, error) {
	driver := DriverSQLite
	if dbType == "postgres" {
		driver = DriverPostgres
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	// an in-memory sqlite database lives and dies with its one connection
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Closed poll summaries
CREATE TABLE IF NOT EXISTS poll_summary (
    id TEXT PRIMARY KEY,
    poll_number INTEGER NOT NULL,
    question TEXT NOT NULL,
    options TEXT NOT NULL,
    results TEXT NOT NULL,
    total_students INTEGER NOT NULL,
    answered_count INTEGER NOT NULL,
    created_at BIGINT NOT NULL,
    closed_at BIGINT NOT NULL,
    archived_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_summary_closed_at ON poll_summary(closed_at);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the poll archive database and creates its schema.

# Connecting

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, pure Go) and "postgres"
(github.com/lib/pq). The drivers register themselves through blank imports
in main. SQLite connections are limited to one so that ":memory:" databases
keep their contents.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll_summary: one row per closed poll. options and results are JSON
    arrays stored as text; created_at and closed_at are Unix milliseconds.

# Indexes

  - poll_summary.closed_at
*/
package db

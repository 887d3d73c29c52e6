// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the live poll server.

One teacher asks a question with a handful of options and a time limit.
Students answer once each over a WebSocket. The server closes the poll when
the time is up or everyone has answered, then broadcasts the results and a
short history to every connected client.

# Starting the Server

No configuration is required:

	go run .

Or with flags:

	go run . -p 4000 -d polls.db -log-format json

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): server port (default: 4000)
  - DATABASE_URL (-d): archive database; empty disables archiving
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LOG_FORMAT (-log-format): auto, text or json (default: auto, text on a terminal)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

Session state lives in memory only. The archive is write-only and is never
read back into a running session.

# Architecture

  - session: the poll engine, a single goroutine owning all state
  - hub: WebSocket connections with one ordered send queue each
  - handlers: the /ws bridge and the history endpoints
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - archive: background writer for closed polls
  - models: wire and domain types
  - db: connection and schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

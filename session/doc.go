// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session coordinates the live classroom poll.

# Event Loop

A Session owns the roster, the active poll, its expiry timer and the poll
history. None of it is locked: every client event, disconnect, timer firing
and history read is queued onto one goroutine and run to completion before
the next one starts.

	s := session.New(hub, archive)
	go s.Run(ctx)

	s.Handle(connID, "submitAnswer", data)
	s.Disconnect(connID)

# Poll Lifecycle

At most one poll is active. createPoll is rejected while one runs. A poll
closes when every registered student has answered or when its timer fires,
whichever comes first; the other path then finds the session idle and does
nothing. Timers carry the id of the poll they were armed for, so a late
timer never closes a newer poll.

Removing a student (disconnect or kick) drops their answer but never closes
the poll, even if everyone left has answered.

# Components

  - Registry: one participant per connection, students counted
  - ComputeResults: per-option counts, out-of-range answers ignored
  - History: last 20 summaries, oldest first
  - relayChat: trims and rebroadcasts chat, keeps nothing

# Collaborators

Broadcaster delivers events (implemented by package hub). Archiver, when set,
receives each PollSummary after the poll closes (implemented by package
archive).
*/
package session

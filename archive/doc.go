// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package archive keeps a database record of closed polls.

The in-memory history only holds the last 20 polls and is lost on restart.
When a database is configured, every closed poll is also written to the
poll_summary table so teachers can look further back. The archive is never
read to rebuild the in-memory history.

# Writing

Record is called from the session loop and must not block it, so summaries
go through a bounded queue to a single writer goroutine:

	a := archive.New(conn)
	defer a.Close()

	a.Record(summary)

A full queue or a failed insert drops the summary with a log line. Close
waits for queued summaries to be written.

# Reading

	rows, err := a.Recent(ctx, 50)

Returns summaries newest first, each with the row's UUID.
*/
package archive

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP and WebSocket handlers.

# Handler Types

  - SocketHandler: upgrades GET /ws and bridges the socket to the session
  - HistoryHandler: GET /history and GET /archive

Handlers are created via constructor functions that receive their
collaborators:

	socketHandler := handlers.NewSocketHandler(hub, sess)
	historyHandler := handlers.NewHistoryHandler(sess, arch)

# Socket Flow

After the upgrade the connection is attached to the hub, which assigns its
id, and the client receives:

	{"event": "connected", "data": {"id": "<uuid>"}}

Every incoming envelope is queued on the session. When the socket closes,
for whatever reason, the connection is detached from the hub and the session
is told so it can update the roster and the active poll.

# History

GET /history returns the last 20 closed polls, oldest first, read through
the session loop.

GET /archive returns archived polls, newest first. It answers 404 when no
database is configured.

	GET /archive?limit=10
*/
package handlers

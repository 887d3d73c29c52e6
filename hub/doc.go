// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub delivers server events to WebSocket connections.

# Connections

Attach registers an upgraded socket under a random UUID and returns a
Client. The caller starts the writer and blocks on the reader:

	c := h.Attach(conn)
	go c.WritePump()
	err := c.ReadPump(func(event string, data json.RawMessage) { ... })
	h.Detach(c.ID)

# Delivery

EmitToAll encodes the event once and queues it for every connection attached
at the time of the call. EmitToOne queues for a single connection. Each
connection has one writer goroutine draining a FIFO queue, so a connection
sees events in the order they were emitted to it.

A connection whose queue is full is detached; its writer flushes what was
queued and closes the socket.

# Frames

	{"event": "pollStarted", "data": {...}}

Events without a payload omit "data".
*/
package hub

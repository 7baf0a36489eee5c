// Package websocket provides WebSocket transport for Star Pusher.
//
// The websocket package implements:
//   - Real-time board broadcasting to every viewer of a session
//   - Session-aware WebSocket connections
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup. All session
// bookkeeping happens on the hub's event loop, so handlers never race.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values carrying the session's
// Snapshot after each state change, plus any game events the change
// produced. Incoming client messages are currently ignored; play happens
// over the REST API, the WebSocket is a live board view.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1)
// when establishing the connection. Updates are broadcast only to clients
// watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful move
//	hub.BroadcastSnapshot(sessionID, result.Snapshot, result.Events)
package websocket

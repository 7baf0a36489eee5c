// Package api provides HTTP REST API handlers for Star Pusher.
//
// The api package implements:
//   - RESTful endpoints for puzzle play
//   - Session management endpoints
//   - Level pack listing
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (body: {"pack": "classic"})
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Keyboard-Style Play:
//   - GET /api/sessions/{id}/state - Current board snapshot
//   - POST /api/sessions/{id}/move - Move or push (body: {"direction": "up"})
//   - POST /api/sessions/{id}/undo - Take back the last move
//   - POST /api/sessions/{id}/redo - Replay an undone move
//
// Level Control:
//   - POST /api/sessions/{id}/reset - Restart the current level
//   - POST /api/sessions/{id}/next-level - Advance a level (wraps)
//   - POST /api/sessions/{id}/previous-level - Go back a level (wraps)
//   - POST /api/sessions/{id}/avatar - Cycle the player avatar
//
// Pointer-Style Play:
//   - POST /api/sessions/{id}/click - Plan and start walking to a tile (body: {"x": 3, "y": 2})
//   - POST /api/sessions/{id}/hover - Preview a route without moving
//   - POST /api/sessions/{id}/tick - Advance path following by one step
//
// Level Packs:
//   - GET /api/packs - List available level packs
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Mutating endpoints return the
// board snapshot after the operation; move, undo, and redo additionally
// report success and any game events:
//
//	{
//	  "success": true,
//	  "solved": false,
//	  "snapshot": { ... },
//	  "events": [{"type": "push", "message": "Pushed a star up", ...}]
//	}
//
// Every successful mutation is also broadcast to WebSocket clients
// watching the session (GET /ws?session={id}).
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

// Package mcp provides a Model Context Protocol interface for Star Pusher.
//
// The mcp package implements a thin MCP client that proxies every tool
// call to the REST API server, so MCP agents and web players share the
// same sessions and see the same boards.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current board in classic Sokoban notation
//   - move: Execute a single directional move or push
//   - undo / redo: Walk the move history backward and forward
//   - reset_level: Restart the current level
//   - next_level / previous_level: Switch levels, keeping progress
//   - find_path: Preview a walking route to a tile
//   - click / tick: Start and advance path-driven movement
//   - create_session / get_session / list_sessions: Session management
//   - list_packs: List available level packs
//   - game_instructions: Full game rules
//
// Transport Modes:
//
// The server supports stdio for local MCP clients; see the -mode flag on
// the main binary.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// Board Notation:
//
// Boards render in the usual text form: '#' walls, '@' player, '$' star,
// '.' goal, '*' star on goal, '+' player on goal, '~' route preview.
package mcp

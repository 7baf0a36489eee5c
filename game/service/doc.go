// Package service provides the business logic layer for Star Pusher.
//
// The service package implements:
//   - Multi-session game management
//   - Level pack selection and per-level progress retention
//   - Move, undo, and redo processing
//   - Pointer-driven play (route planning and step-by-step following)
//   - Auto-save after every mutation
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. PackManager loads level packs from disk.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation and orchestration. A
// session keeps one engine per level it has visited, so hopping between
// levels never loses in-progress positions or history.
//
// Usage:
//
//	packs := levels.NewManager("levels")
//	sessionMgr := session.NewManager(packs)
//	gameService := service.NewGameService(sessionMgr, packs)
//
//	// Create a new session on the built-in pack
//	info, err := gameService.CreateSession(ctx, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Push stars around
//	result, err := gameService.Move(ctx, info.ID, "up")
//
// Presentation layers receive Snapshot values and never touch engine state
// directly.
package service

// Package session provides session management and persistence for Star Pusher.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - On-disk JSON persistence of full game state, history stacks included
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// FilePersistence stores one JSON file per session under a sessions
// directory and rebuilds sessions (engines and all) when loading.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness. Lookups are case-insensitive.
//
// Durability:
//
// A saved session restores to an equivalent one: same level positions, same
// step and push counters, same undo and redo stacks. A session file that
// cannot be decoded is not fatal; the manager starts that session over on
// the first level of the default pack.
//
// Usage:
//
//	packs := levels.NewManager("levels")
//	persistence, err := session.NewFilePersistence("sessions", packs)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(packs, persistence)
//
//	// Create a new session on the default pack
//	sess, err := manager.Create("", packs.GetDefault())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
// Cleanup:
//
// Sessions can be explicitly deleted or may expire based on inactivity.
// Expired sessions are saved to disk before leaving memory, so cleanup
// never loses progress.
package session

package session

import (
	"errors"
	"time"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/service"
)

var (
	// ErrSessionNotFound is returned when a session does not exist in storage.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCorruptSession is returned when a persisted session cannot be
	// decoded or references data that no longer fits its level pack.
	ErrCorruptSession = errors.New("corrupt session data")
)

// GamePersistence defines the interface for persisting sessions
type GamePersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedGameData is the JSON shape of a saved session: the full
// per-level game states (positions, counters, and both history stacks),
// the active level, and the selected avatar. Restoring it reproduces an
// equivalent session bit-for-bit.
type PersistedGameData struct {
	ID             string                    `json:"id"`
	PackName       string                    `json:"pack_name"`
	LevelIndex     int                       `json:"level_index"`
	Avatar         int                       `json:"avatar"`
	CreatedAt      time.Time                 `json:"created_at"`
	LastAccessedAt time.Time                 `json:"last_accessed_at"`
	Levels         map[int]*engine.GameState `json:"levels"`
}

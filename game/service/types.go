package service

import (
	"time"

	"github.com/starpusher/starpusher/game/engine"
)

// Snapshot is the read-only view of one session's current level handed to
// presentation layers. Presentation never mutates it.
type Snapshot struct {
	SessionID   string            `json:"session_id"`
	PackName    string            `json:"pack_name"`
	LevelIndex  int               `json:"level_index"`
	LevelCount  int               `json:"level_count"`
	Grid        *engine.Grid      `json:"grid"`
	Goals       []engine.Position `json:"goals"`
	State       *engine.GameState `json:"state"`
	PreviewPath []engine.Position `json:"preview_path,omitempty"`
	Avatar      int               `json:"avatar"`
	Solved      bool              `json:"solved"`
	Following   bool              `json:"following"`
	Steps       int               `json:"steps"`
	Pushes      int               `json:"pushes"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string    `json:"id"`
	PackName       string    `json:"pack_name"`
	LevelIndex     int       `json:"level_index"`
	LevelCount     int       `json:"level_count"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Snapshot       *Snapshot `json:"snapshot"`
}

// MoveResult contains the result of a move, undo, or redo operation
type MoveResult struct {
	Success  bool        `json:"success"`
	Solved   bool        `json:"solved"`
	Snapshot *Snapshot   `json:"snapshot"`
	Events   []GameEvent `json:"events,omitempty"`
}

// PathResult contains a planned or previewed route
type PathResult struct {
	Found    bool              `json:"found"`
	Path     []engine.Position `json:"path,omitempty"`
	Snapshot *Snapshot         `json:"snapshot"`
}

// TickResult reports one step of path-driven movement
type TickResult struct {
	Moved    bool      `json:"moved"`
	Active   bool      `json:"active"`
	Solved   bool      `json:"solved"`
	Snapshot *Snapshot `json:"snapshot"`
}

// GameEvent represents something that happened during play
type GameEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // "move", "push", "undo", "redo", "solved", "reset", "level_change", "avatar"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/levels"
)

// GameService defines all game-related operations
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, packName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Manual play
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Redo(ctx context.Context, sessionID string) (*MoveResult, error)

	// Level control
	Reset(ctx context.Context, sessionID string) (*Snapshot, error)
	NextLevel(ctx context.Context, sessionID string) (*Snapshot, error)
	PreviousLevel(ctx context.Context, sessionID string) (*Snapshot, error)
	CycleAvatar(ctx context.Context, sessionID string) (*Snapshot, error)

	// Pointer-driven play
	ClickAt(ctx context.Context, sessionID string, dest engine.Position) (*PathResult, error)
	HoverAt(ctx context.Context, sessionID string, dest engine.Position) (*PathResult, error)
	TickPath(ctx context.Context, sessionID string) (*TickResult, error)

	// State
	Snapshot(ctx context.Context, sessionID string) (*Snapshot, error)
	ListPacks(ctx context.Context) ([]*levels.PackInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, pack *levels.Pack) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PackManager handles level pack loading
type PackManager interface {
	LoadPack(name string) (*levels.Pack, error)
	ListPacks() ([]*levels.PackInfo, error)
	GetDefault() *levels.Pack
}

// Session represents an active game: one player working through the
// levels of a pack. Each level keeps its own engine (and so its own
// in-progress state) across level switches, the way the original game
// lets you hop between levels without losing progress.
type Session struct {
	ID             string
	Pack           *levels.Pack
	LevelIndex     int
	Avatar         int
	Engines        map[int]*engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession creates a session positioned at the pack's first level.
func NewSession(id string, pack *levels.Pack) *Session {
	return &Session{
		ID:             id,
		Pack:           pack,
		Engines:        make(map[int]*engine.GameEngine),
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

// LevelCount returns the number of levels in the session's pack.
func (s *Session) LevelCount() int {
	return len(s.Pack.Levels)
}

// Engine returns the engine for the session's current level, creating it
// on first use.
func (s *Session) Engine() (*engine.GameEngine, error) {
	return s.EngineFor(s.LevelIndex)
}

// EngineFor returns the engine for the given level index, creating it on
// first use.
func (s *Session) EngineFor(index int) (*engine.GameEngine, error) {
	if index < 0 || index >= len(s.Pack.Levels) {
		return nil, fmt.Errorf("level index %d out of range (pack %s has %d levels)",
			index, s.Pack.Name, len(s.Pack.Levels))
	}
	if eng, ok := s.Engines[index]; ok {
		return eng, nil
	}
	lvl := s.Pack.Levels[index]
	eng, err := engine.NewEngine(lvl.Grid, lvl.Goals, lvl.Player, lvl.Stars)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine for level %d: %w", index+1, err)
	}
	s.Engines[index] = eng
	return eng, nil
}

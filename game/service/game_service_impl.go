package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/levels"
	"github.com/starpusher/starpusher/pkg/logger"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, packs PackManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		packs:    packs,
	}
}

// CreateSession creates a new game session on the named level pack. An empty
// name uses the built-in pack.
func (s *gameServiceImpl) CreateSession(ctx context.Context, packName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pack *levels.Pack
	if packName != "" {
		var err error
		pack, err = s.packs.LoadPack(packName)
		if err != nil {
			available, listErr := s.packs.ListPacks()
			if listErr == nil && len(available) > 0 {
				var names []string
				for _, p := range available {
					names = append(names, p.PackID)
				}
				return nil, fmt.Errorf("pack '%s' not found. Available packs: %v", packName, names)
			}
			return nil, fmt.Errorf("failed to load pack %s: %w", packName, err)
		}
	} else {
		pack = s.packs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", pack)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess)
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		info, err := s.sessionInfo(sess)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single directional move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("unknown direction %q (want up, down, left, or right)", direction)
	}

	prevPushes := eng.Pushes()
	success := eng.Move(dir)

	events := []GameEvent{}
	if success {
		state := eng.State()
		events = append(events, newEvent("move",
			fmt.Sprintf("Moved %s to (%d,%d)", dir, state.Player.X, state.Player.Y),
			state.Player))
		if eng.Pushes() > prevPushes {
			events = append(events, newEvent("push",
				fmt.Sprintf("Pushed a star %s", dir), state.Player))
		}
		if eng.IsSolved() {
			events = append(events, newEvent("solved",
				fmt.Sprintf("Level %d solved in %d steps!", sess.LevelIndex+1, eng.Steps()),
				state.Player))
		}
	}

	s.autoSave(sessionID, "move")

	return &MoveResult{
		Success:  success,
		Solved:   eng.IsSolved(),
		Snapshot: s.snapshot(sess, eng),
		Events:   events,
	}, nil
}

// Undo takes back the most recent move
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	success := eng.Undo()
	events := []GameEvent{}
	if success {
		events = append(events, newEvent("undo", "Took back the last move", eng.State().Player))
	}

	s.autoSave(sessionID, "undo")

	return &MoveResult{
		Success:  success,
		Solved:   eng.IsSolved(),
		Snapshot: s.snapshot(sess, eng),
		Events:   events,
	}, nil
}

// Redo replays the most recently undone move
func (s *gameServiceImpl) Redo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	success := eng.Redo()
	events := []GameEvent{}
	if success {
		events = append(events, newEvent("redo", "Replayed the undone move", eng.State().Player))
		if eng.IsSolved() {
			events = append(events, newEvent("solved",
				fmt.Sprintf("Level %d solved in %d steps!", sess.LevelIndex+1, eng.Steps()),
				eng.State().Player))
		}
	}

	s.autoSave(sessionID, "redo")

	return &MoveResult{
		Success:  success,
		Solved:   eng.IsSolved(),
		Snapshot: s.snapshot(sess, eng),
		Events:   events,
	}, nil
}

// Reset restarts the current level from scratch, history included.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	eng.Restart()
	s.autoSave(sessionID, "reset")
	return s.snapshot(sess, eng), nil
}

// NextLevel advances to the next level in the pack, wrapping past the last
// one. The level being left keeps its in-progress state.
func (s *gameServiceImpl) NextLevel(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.switchLevel(sessionID, +1)
}

// PreviousLevel goes back one level, wrapping before the first one.
func (s *gameServiceImpl) PreviousLevel(ctx context.Context, sessionID string) (*Snapshot, error) {
	return s.switchLevel(sessionID, -1)
}

func (s *gameServiceImpl) switchLevel(sessionID string, delta int) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	count := sess.LevelCount()
	sess.LevelIndex = ((sess.LevelIndex+delta)%count + count) % count

	eng, err := sess.Engine()
	if err != nil {
		return nil, err
	}

	s.autoSave(sessionID, "level change")
	return s.snapshot(sess, eng), nil
}

// CycleAvatar switches to the next player avatar
func (s *gameServiceImpl) CycleAvatar(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Avatar = (sess.Avatar + 1) % engine.AvatarCount

	s.autoSave(sessionID, "avatar change")
	return s.snapshot(sess, eng), nil
}

// ClickAt plans a walking route to the clicked tile and starts following it
func (s *gameServiceImpl) ClickAt(ctx context.Context, sessionID string, dest engine.Position) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	path := eng.ClickAt(dest)

	return &PathResult{
		Found:    path != nil,
		Path:     path,
		Snapshot: s.snapshot(sess, eng),
	}, nil
}

// HoverAt computes a route preview without moving
func (s *gameServiceImpl) HoverAt(ctx context.Context, sessionID string, dest engine.Position) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	path := eng.HoverAt(dest)

	return &PathResult{
		Found:    path != nil,
		Path:     path,
		Snapshot: s.snapshot(sess, eng),
	}, nil
}

// TickPath advances path-driven movement by one step
func (s *gameServiceImpl) TickPath(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	moved := eng.TickPath()
	if moved {
		s.autoSave(sessionID, "path step")
	}

	return &TickResult{
		Moved:    moved,
		Active:   eng.FollowingPath(),
		Solved:   eng.IsSolved(),
		Snapshot: s.snapshot(sess, eng),
	}, nil
}

// Snapshot returns the current view of a session's active level
func (s *gameServiceImpl) Snapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, eng, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.snapshot(sess, eng), nil
}

// ListPacks returns the level packs available to new sessions
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*levels.PackInfo, error) {
	return s.packs.ListPacks()
}

// lookup fetches a session and the engine for its active level.
func (s *gameServiceImpl) lookup(sessionID string) (*Session, *engine.GameEngine, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	eng, err := sess.Engine()
	if err != nil {
		return nil, nil, err
	}
	return sess, eng, nil
}

// snapshot builds the presentation view of a session's active level.
func (s *gameServiceImpl) snapshot(sess *Session, eng *engine.GameEngine) *Snapshot {
	return &Snapshot{
		SessionID:   sess.ID,
		PackName:    sess.Pack.Name,
		LevelIndex:  sess.LevelIndex,
		LevelCount:  sess.LevelCount(),
		Grid:        eng.Grid(),
		Goals:       eng.Goals(),
		State:       eng.State(),
		PreviewPath: eng.PreviewPath(),
		Avatar:      sess.Avatar,
		Solved:      eng.IsSolved(),
		Following:   eng.FollowingPath(),
		Steps:       eng.Steps(),
		Pushes:      eng.Pushes(),
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) (*SessionInfo, error) {
	eng, err := sess.Engine()
	if err != nil {
		return nil, err
	}
	return &SessionInfo{
		ID:             sess.ID,
		PackName:       sess.Pack.Name,
		LevelIndex:     sess.LevelIndex,
		LevelCount:     sess.LevelCount(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       s.snapshot(sess, eng),
	}, nil
}

// autoSave persists a session after a mutation, logging rather than failing
// when the write goes wrong.
func (s *gameServiceImpl) autoSave(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		logger.Log.Warnf("Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

func newEvent(eventType, message string, pos engine.Position) GameEvent {
	return GameEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Position:  pos,
	}
}

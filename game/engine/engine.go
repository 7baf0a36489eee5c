package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for one level attempt
type Engine interface {
	// State management
	State() *GameState
	SetState(state *GameState) error
	Restart() *GameState
	IsSolved() bool

	// Movement operations
	Move(dir Direction) bool
	Undo() bool
	Redo() bool
	PossibleMoves() []string

	// Pointer-driven movement
	ClickAt(dest Position) []Position
	HoverAt(dest Position) []Position
	PreviewPath() []Position
	TickPath() bool
	FollowingPath() bool
	CancelPath()

	// Level data
	Grid() *Grid
	Goals() []Position
	Steps() int
	Pushes() int
}

// GameEngine implements the Engine interface for a single level.
type GameEngine struct {
	grid     *Grid
	goals    []Position
	player   Position // starting position, used on restart
	stars    []Position
	state    *GameState
	follower PathFollower
	preview  []Position
}

// NewEngine creates an engine for one level. The grid is cloned, floor
// tiles reachable from the player's start are classified inside, and the
// remaining outside tiles get cosmetic decoration.
func NewEngine(grid *Grid, goals []Position, player Position, stars []Position) (*GameEngine, error) {
	if grid == nil || grid.Width == 0 || grid.Height == 0 {
		return nil, fmt.Errorf("engine: grid must not be empty")
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("engine: level must have at least one goal")
	}
	if len(stars) < len(goals) {
		return nil, fmt.Errorf("engine: level has %d goals but only %d stars", len(goals), len(stars))
	}
	if grid.IsWall(player.X, player.Y) || !grid.InBounds(player.X, player.Y) {
		return nil, fmt.Errorf("engine: player start (%d,%d) is not a floor tile", player.X, player.Y)
	}

	g := grid.Clone()
	g.ClassifyFloors(player.X, player.Y)
	g.Decorate(OutsideDecorationPct, rand.New(rand.NewSource(time.Now().UnixNano())))

	e := &GameEngine{
		grid:   g,
		goals:  append([]Position(nil), goals...),
		player: player,
		stars:  append([]Position(nil), stars...),
	}
	e.state = NewGameState(player, stars)
	return e, nil
}

// State returns the current attempt state.
func (e *GameEngine) State() *GameState {
	return e.state
}

// SetState replaces the attempt state (used when restoring a persisted
// game). The star count must match the level's.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("engine: state cannot be nil")
	}
	if len(state.Stars) != len(e.stars) {
		return fmt.Errorf("engine: state has %d stars, level has %d", len(state.Stars), len(e.stars))
	}
	e.state = state
	e.follower.Cancel()
	e.preview = nil
	return nil
}

// Restart discards the attempt, including its undo/redo history, and
// returns a fresh state at the level's starting positions.
func (e *GameEngine) Restart() *GameState {
	e.state = NewGameState(e.player, e.stars)
	e.follower.Cancel()
	e.preview = nil
	return e.state
}

// IsSolved reports whether every goal is covered by a star. It is a
// derived predicate, recomputed on demand rather than stored.
func (e *GameEngine) IsSolved() bool {
	return IsLevelFinished(e.state, e.goals)
}

// Move performs a manual directional move. It cancels any path-driven
// movement first and is ignored once the level is solved.
func (e *GameEngine) Move(dir Direction) bool {
	if e.IsSolved() {
		return false
	}
	e.follower.Cancel()
	moved := AttemptMove(e.grid, e.state, dir)
	if moved {
		e.preview = nil
	}
	return moved
}

// Undo reverses the most recent move.
func (e *GameEngine) Undo() bool {
	e.follower.Cancel()
	return Undo(e.state)
}

// Redo reapplies the most recently undone move.
func (e *GameEngine) Redo() bool {
	e.follower.Cancel()
	return Redo(e.state)
}

// PossibleMoves returns the names of the directions the player could
// currently move in (including pushes).
func (e *GameEngine) PossibleMoves() []string {
	if e.IsSolved() {
		return nil
	}
	var possible []string
	for _, dir := range []Direction{Up, Down, Left, Right} {
		probe := e.cloneStateShallow()
		if AttemptMove(e.grid, probe, dir) {
			possible = append(possible, dir.String())
		}
	}
	return possible
}

// cloneStateShallow copies positions and counters but not history, enough
// for a throwaway legality probe.
func (e *GameEngine) cloneStateShallow() *GameState {
	c := NewGameState(e.state.Player, e.state.Stars)
	return c
}

// ClickAt plans a route to dest and begins replaying it tick by tick.
// Returns the planned route, or nil when the level is solved, dest is
// unreachable, blocked, or the player is already there.
func (e *GameEngine) ClickAt(dest Position) []Position {
	if e.IsSolved() {
		return nil
	}
	path := FindPath(dest, e.grid, e.state)
	if path == nil {
		return nil
	}
	e.follower.Follow(append([]Position(nil), path...))
	return path
}

// HoverAt computes a preview route to dest for rendering. It never
// mutates the attempt state and is safe to call on every pointer move.
func (e *GameEngine) HoverAt(dest Position) []Position {
	if e.IsSolved() {
		e.preview = nil
		return nil
	}
	e.preview = FindPath(dest, e.grid, e.state)
	return e.preview
}

// PreviewPath returns the last hover preview, if any.
func (e *GameEngine) PreviewPath() []Position {
	return e.preview
}

// TickPath advances path-driven movement by one step. Returns whether the
// player moved this tick.
func (e *GameEngine) TickPath() bool {
	if e.IsSolved() {
		e.follower.Cancel()
		return false
	}
	moved := e.follower.Tick(e.grid, e.state)
	if moved {
		e.preview = nil
	}
	return moved
}

// FollowingPath reports whether path-driven movement is in progress.
func (e *GameEngine) FollowingPath() bool {
	return e.follower.Following()
}

// CancelPath abandons any path-driven movement.
func (e *GameEngine) CancelPath() {
	e.follower.Cancel()
}

// Grid returns the level's decorated grid.
func (e *GameEngine) Grid() *Grid {
	return e.grid
}

// Goals returns the level's goal tiles.
func (e *GameEngine) Goals() []Position {
	return e.goals
}

// Steps returns the player step counter.
func (e *GameEngine) Steps() int {
	return e.state.StepCounter
}

// Pushes returns the star push counter.
func (e *GameEngine) Pushes() int {
	return e.state.PushCounter
}

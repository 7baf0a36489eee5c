package engine

// IsBlocked reports whether (x, y) cannot be entered: it is a wall, lies
// outside the grid, or is occupied by a star. This is the strict predicate
// used for all movement and pathing decisions, unlike Grid.IsWall which
// treats out-of-bounds coordinates permissively.
func IsBlocked(grid *Grid, gs *GameState, x, y int) bool {
	if grid.IsWall(x, y) {
		return true
	}
	if !grid.InBounds(x, y) {
		return true
	}
	return gs.StarAt(x, y) >= 0
}

// AttemptMove tries to move the player one tile in the given direction,
// pushing a star when one occupies the target tile. On success the state is
// mutated, the move is appended to the undo stack and the redo stack is
// cleared. On failure the state is left completely untouched.
func AttemptMove(grid *Grid, gs *GameState, dir Direction) bool {
	if dir.IsZero() {
		return false
	}

	px, py := gs.Player.X, gs.Player.Y
	tx, ty := px+dir.DX, py+dir.DY

	if grid.IsWall(tx, ty) {
		return false
	}

	var move MoveRecord
	if i := gs.StarAt(tx, ty); i >= 0 {
		// A star is in the way; it moves two tiles ahead of the player
		// or the whole move fails.
		bx, by := px+2*dir.DX, py+2*dir.DY
		if IsBlocked(grid, gs, bx, by) {
			return false
		}
		move = append(move, StepRecord{OldX: tx, OldY: ty, NewX: bx, NewY: by, Index: i})
	}
	move = append(move, StepRecord{OldX: px, OldY: py, NewX: tx, NewY: ty, Index: PlayerIndex})

	applyMove(gs, move, false)
	gs.UndoStack = append(gs.UndoStack, move)
	gs.RedoStack = gs.RedoStack[:0]
	return true
}

// applyMove applies (or, with undo=true, reverses) every step of a move:
// positions are set to the step's new (or old) coordinates and the step
// and push counters are incremented (or decremented).
func applyMove(gs *GameState, move MoveRecord, undo bool) {
	for _, step := range move {
		x, y, inc := step.NewX, step.NewY, 1
		if undo {
			x, y, inc = step.OldX, step.OldY, -1
		}
		if step.Index == PlayerIndex {
			gs.Player = Position{X: x, Y: y}
			gs.StepCounter += inc
		} else {
			gs.Stars[step.Index] = Position{X: x, Y: y}
			gs.PushCounter += inc
		}
	}
}

// Undo reverses the most recent move and transfers it to the redo stack.
// It returns false when there is nothing to undo.
func Undo(gs *GameState) bool {
	if len(gs.UndoStack) == 0 {
		return false
	}
	move := gs.UndoStack[len(gs.UndoStack)-1]
	gs.UndoStack = gs.UndoStack[:len(gs.UndoStack)-1]
	applyMove(gs, move, true)
	gs.RedoStack = append(gs.RedoStack, move)
	return true
}

// Redo reapplies the most recently undone move and transfers it back to
// the undo stack. It returns false when there is nothing to redo.
func Redo(gs *GameState) bool {
	if len(gs.RedoStack) == 0 {
		return false
	}
	move := gs.RedoStack[len(gs.RedoStack)-1]
	gs.RedoStack = gs.RedoStack[:len(gs.RedoStack)-1]
	applyMove(gs, move, false)
	gs.UndoStack = append(gs.UndoStack, move)
	return true
}

// IsLevelFinished reports whether every goal tile is covered by a star.
// Stars beyond the goal count may sit anywhere.
func IsLevelFinished(gs *GameState, goals []Position) bool {
	for _, goal := range goals {
		if gs.StarAt(goal.X, goal.Y) < 0 {
			return false
		}
	}
	return true
}

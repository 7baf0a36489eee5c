package engine

// PathFollower replays a planned path one step per tick. It is a small
// state machine: Idle when it holds no steps, Following otherwise. Ticks
// are driven externally at the animation cadence; any competing input
// cancels the remaining steps at a tick boundary.
type PathFollower struct {
	// steps holds the remaining path ordered destination to source, so
	// the next step to take is the last element.
	steps []Position
}

// Follow replaces any in-progress path with the given one.
func (pf *PathFollower) Follow(path []Position) {
	pf.steps = path
}

// Cancel drops all remaining steps.
func (pf *PathFollower) Cancel() {
	pf.steps = nil
}

// Following reports whether there are steps left to replay.
func (pf *PathFollower) Following() bool {
	return len(pf.steps) > 0
}

// Remaining returns the number of queued steps.
func (pf *PathFollower) Remaining() int {
	return len(pf.steps)
}

// Tick consumes the next path coordinate, derives the single-step
// direction from the player's current position and feeds it through
// AttemptMove exactly like a manual key press. A reconstructed path ends
// with the source tile itself; that entry is skipped. If the move fails
// the remaining steps are abandoned. Returns whether the player moved.
func (pf *PathFollower) Tick(grid *Grid, gs *GameState) bool {
	for len(pf.steps) > 0 {
		next := pf.steps[len(pf.steps)-1]
		pf.steps = pf.steps[:len(pf.steps)-1]

		if next == gs.Player {
			continue
		}

		dir := Direction{DX: next.X - gs.Player.X, DY: next.Y - gs.Player.Y}
		if !AttemptMove(grid, gs, dir) {
			pf.steps = nil
			return false
		}
		return true
	}
	return false
}

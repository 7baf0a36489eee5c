package engine

import "testing"

// buildFixture turns rows of level text into a grid, attempt state, and
// goal list for tests. The same characters as level files apply: '#'
// wall, '@' player, '$' star, '.' goal, '+' player on goal, '*' star on
// goal, ' ' floor. Rows may have different lengths; short rows are padded
// with floor.
func buildFixture(t *testing.T, rows []string) (*Grid, *GameState, []Position) {
	t.Helper()

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	grid := NewGrid(width, len(rows))

	player := Position{X: -1, Y: -1}
	var stars, goals []Position
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case '#':
				grid.Tiles[y][x].Kind = Wall
			case '@':
				player = Position{X: x, Y: y}
			case '$':
				stars = append(stars, Position{X: x, Y: y})
			case '.':
				goals = append(goals, Position{X: x, Y: y})
			case '+':
				player = Position{X: x, Y: y}
				goals = append(goals, Position{X: x, Y: y})
			case '*':
				stars = append(stars, Position{X: x, Y: y})
				goals = append(goals, Position{X: x, Y: y})
			case ' ':
			default:
				t.Fatalf("unknown fixture character %q at (%d,%d)", ch, x, y)
			}
		}
	}
	if player.X < 0 {
		t.Fatal("fixture has no player")
	}

	return grid, NewGameState(player, stars), goals
}

// stateEqual compares player and star positions plus the counters, which
// is what atomicity and reversibility tests care about.
func stateEqual(a, b *GameState) bool {
	if a.Player != b.Player || a.StepCounter != b.StepCounter || a.PushCounter != b.PushCounter {
		return false
	}
	if len(a.Stars) != len(b.Stars) {
		return false
	}
	for i := range a.Stars {
		if a.Stars[i] != b.Stars[i] {
			return false
		}
	}
	return true
}

func snapshotState(gs *GameState) *GameState {
	c := NewGameState(gs.Player, gs.Stars)
	c.StepCounter = gs.StepCounter
	c.PushCounter = gs.PushCounter
	return c
}

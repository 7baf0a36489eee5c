package engine

import "testing"

func TestFollowerWalksFullPath(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@   #",
		"######",
	})

	dest := Position{X: 4, Y: 1}
	path := FindPath(dest, grid, gs)
	if path == nil {
		t.Fatal("no path along an open corridor")
	}

	var pf PathFollower
	pf.Follow(path)

	moves := 0
	for pf.Following() {
		if !pf.Tick(grid, gs) {
			t.Fatalf("tick %d failed mid-route", moves)
		}
		moves++
	}
	if moves != 3 {
		t.Errorf("walked %d steps, want 3", moves)
	}
	if gs.Player != dest {
		t.Errorf("player ended at %+v, want %+v", gs.Player, dest)
	}
	if gs.StepCounter != 3 {
		t.Errorf("StepCounter = %d, want 3", gs.StepCounter)
	}
}

func TestFollowerSkipsSourceEntry(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"####",
		"#@ #",
		"####",
	})

	var pf PathFollower
	pf.Follow(FindPath(Position{X: 2, Y: 1}, grid, gs))
	if pf.Remaining() != 2 {
		t.Fatalf("Remaining = %d, want 2 (destination plus source)", pf.Remaining())
	}

	// A single tick both discards the source entry and takes the step.
	if !pf.Tick(grid, gs) {
		t.Fatal("tick did not move")
	}
	if gs.Player != (Position{X: 2, Y: 1}) {
		t.Errorf("player at %+v, want (2,1)", gs.Player)
	}
	if pf.Following() {
		t.Error("follower still active after reaching the destination")
	}
}

func TestFollowerAbandonsOnObstacle(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@   #",
		"######",
	})

	var pf PathFollower
	pf.Follow(FindPath(Position{X: 4, Y: 1}, grid, gs))

	if !pf.Tick(grid, gs) {
		t.Fatal("first tick failed")
	}

	// A wall appears on the remaining route mid-animation.
	grid.Tiles[1][3].Kind = Wall

	if pf.Tick(grid, gs) {
		t.Error("tick moved into a wall")
	}
	if pf.Following() {
		t.Error("follower kept its steps after a failed move")
	}
	if gs.Player != (Position{X: 2, Y: 1}) {
		t.Errorf("player at %+v, want (2,1)", gs.Player)
	}
}

func TestFollowerCancel(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@   #",
		"######",
	})

	var pf PathFollower
	pf.Follow(FindPath(Position{X: 4, Y: 1}, grid, gs))
	pf.Cancel()

	if pf.Following() {
		t.Error("follower active after cancel")
	}
	if pf.Tick(grid, gs) {
		t.Error("tick moved after cancel")
	}
	if gs.Player != (Position{X: 1, Y: 1}) {
		t.Errorf("player at %+v, want the start tile", gs.Player)
	}
}

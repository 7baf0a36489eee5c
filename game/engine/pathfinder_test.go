package engine

import (
	"reflect"
	"testing"
)

func TestFindPathOpenGrid(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"#######",
		"#@    #",
		"#     #",
		"#     #",
		"#     #",
		"#     #",
		"#######",
	})

	path := FindPath(Position{X: 5, Y: 5}, grid, gs)
	if path == nil {
		t.Fatal("expected a path across an open room")
	}

	// The reconstruction includes the source tile, so a shortest route of
	// 8 unit steps has 9 positions, ordered destination first.
	if len(path) != 9 {
		t.Fatalf("path has %d positions, want 9", len(path))
	}
	if path[0] != (Position{X: 5, Y: 5}) {
		t.Errorf("path[0] = %+v, want the destination", path[0])
	}
	if path[len(path)-1] != gs.Player {
		t.Errorf("path ends at %+v, want the player's tile", path[len(path)-1])
	}

	// Every hop must be a single orthogonal step.
	for i := 1; i < len(path); i++ {
		d := abs(path[i].X-path[i-1].X) + abs(path[i].Y-path[i-1].Y)
		if d != 1 {
			t.Errorf("hop %d spans distance %d: %+v -> %+v", i, d, path[i-1], path[i])
		}
	}
}

func TestFindPathBlockedDestinations(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@$  #",
		"#    #",
		"######",
	})

	tests := []struct {
		name string
		dest Position
	}{
		{"wall", Position{X: 0, Y: 0}},
		{"star", Position{X: 2, Y: 1}},
		{"out of bounds", Position{X: -1, Y: 1}},
		{"player's own tile", Position{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if path := FindPath(tt.dest, grid, gs); path != nil {
				t.Errorf("FindPath(%+v) = %v, want nil", tt.dest, path)
			}
		})
	}
}

func TestFindPathWalledOff(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"#######",
		"#@ # ##",
		"#  #  #",
		"#######",
	})

	if path := FindPath(Position{X: 5, Y: 2}, grid, gs); path != nil {
		t.Errorf("found a path into a sealed room: %v", path)
	}
}

func TestFindPathRoutesAroundStars(t *testing.T) {
	// The straight route is plugged by a star; the only way through is
	// the detour along the bottom row.
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@$ .#",
		"#    #",
		"######",
	})

	path := FindPath(Position{X: 4, Y: 1}, grid, gs)
	if path == nil {
		t.Fatal("expected a detour around the star")
	}
	for _, p := range path {
		if gs.StarAt(p.X, p.Y) != -1 {
			t.Errorf("path passes through a star at %+v", p)
		}
	}
	if len(path) != 6 {
		t.Errorf("detour has %d positions, want 6", len(path))
	}
}

func TestFindPathDeterministic(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"#######",
		"#@    #",
		"#     #",
		"#    .#",
		"#######",
	})

	first := FindPath(Position{X: 5, Y: 3}, grid, gs)
	second := FindPath(Position{X: 5, Y: 3}, grid, gs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical searches diverged:\n%v\n%v", first, second)
	}
}

func TestFindPathDoesNotMutateState(t *testing.T) {
	grid, gs, _ := buildFixture(t, []string{
		"######",
		"#@$  #",
		"#    #",
		"######",
	})
	before := snapshotState(gs)

	FindPath(Position{X: 4, Y: 2}, grid, gs)
	if !stateEqual(gs, before) {
		t.Error("FindPath mutated the game state")
	}
	if len(gs.UndoStack) != 0 {
		t.Error("FindPath recorded a move")
	}
}

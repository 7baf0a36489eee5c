// Command validate provides a small CLI that validates level pack files in
// the ../levels directory (or directories given as arguments). It checks:
//   - Allowed characters and comment handling
//   - Presence of exactly one start point per level
//   - At least one goal per level, and enough stars to cover the goals
//   - Reachability: every goal sits on floor the player's flood fill can see
//   - Corner traps: goals boxed in by walls on two adjacent sides are flagged
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/levels"
)

// ValidationResult captures the outcome of validating a single pack file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

// validatePack loads and validates a single pack file.
func validatePack(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	f, err := os.Open(filePath)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	pack, err := levels.Parse(name, f)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, err.Error())
		return result
	}

	if len(pack.Levels) == 0 {
		result.Valid = false
		result.Notes = append(result.Notes, "Pack contains no levels")
		return result
	}

	result.Notes = append(result.Notes, fmt.Sprintf("✓ Pack: %s (%d levels)", pack.Name, len(pack.Levels)))

	for _, lvl := range pack.Levels {
		notes, ok := checkLevel(lvl)
		if !ok {
			result.Valid = false
		}
		result.Notes = append(result.Notes, notes...)
	}

	return result
}

// checkLevel runs the per-level analyses that the parser does not cover.
func checkLevel(lvl *levels.Level) ([]string, bool) {
	var notes []string
	valid := true

	// Flood fill from the start point marks every tile the player can
	// stand on. Goals outside that region can never be covered.
	grid := lvl.Grid.Clone()
	grid.ClassifyFloors(lvl.Player.X, lvl.Player.Y)

	unreachable := 0
	for _, goal := range lvl.Goals {
		if grid.Tiles[goal.Y][goal.X].Kind != engine.InsideFloor {
			unreachable++
		}
	}
	if unreachable > 0 {
		valid = false
		notes = append(notes, fmt.Sprintf("✗ Level %d: %d goal(s) unreachable from the start point",
			lvl.Number+1, unreachable))
	}

	// A goal tucked into a wall corner is legal but worth flagging: a star
	// can only rest there if pushed in exactly the right order.
	corners := 0
	for _, goal := range lvl.Goals {
		if isCorner(grid, goal.X, goal.Y) {
			corners++
		}
	}

	onGoal := 0
	for _, star := range lvl.Stars {
		for _, goal := range lvl.Goals {
			if star == goal {
				onGoal++
				break
			}
		}
	}

	notes = append(notes, fmt.Sprintf("✓ Level %d: %dx%d, %d goals (%d pre-covered, %d in corners), %d stars",
		lvl.Number+1, lvl.Width, lvl.Height, len(lvl.Goals), onGoal, corners, len(lvl.Stars)))

	return notes, valid
}

// isCorner reports whether the tile has walls on two adjacent sides.
func isCorner(grid *engine.Grid, x, y int) bool {
	up := grid.IsWall(x, y-1)
	down := grid.IsWall(x, y+1)
	left := grid.IsWall(x-1, y)
	right := grid.IsWall(x+1, y)
	return (up || down) && (left || right)
}

func main() {
	dirs := os.Args[1:]
	if len(dirs) == 0 {
		dirs = []string{"levels"}
	}

	failures := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Printf("Cannot read directory %s: %v\n", dir, err)
			failures++
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}

			result := validatePack(filepath.Join(dir, entry.Name()))
			status := "OK"
			if !result.Valid {
				status = "FAILED"
				failures++
			}
			fmt.Printf("\n=== %s: %s ===\n", result.File, status)
			for _, note := range result.Notes {
				fmt.Printf("  %s\n", note)
			}
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

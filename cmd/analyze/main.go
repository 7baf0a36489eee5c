// Command analyze prints quick, human-readable statistics about level pack
// files in the levels directory. It summarizes dimensions, star and goal
// counts, how much of each board is playable floor, and a rough difficulty
// estimate from the spread between stars and goals.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/starpusher/starpusher/game/engine"
	"github.com/starpusher/starpusher/game/levels"
)

var levelsDir = flag.String("levels-dir", "levels", "Directory containing level pack files")

func main() {
	flag.Parse()

	manager := levels.NewManager(*levelsDir)

	packs, err := manager.ListPacks()
	if err != nil {
		fmt.Printf("Error listing packs: %v\n", err)
		os.Exit(1)
	}

	for _, info := range packs {
		fmt.Printf("\n=== Analyzing %s ===\n", info.PackID)
		analyzePack(manager, info.PackID)
	}
}

func analyzePack(manager *levels.Manager, packID string) {
	pack, err := manager.LoadPack(packID)
	if err != nil {
		fmt.Printf("Error loading pack: %v\n", err)
		return
	}

	fmt.Printf("Levels: %d\n", len(pack.Levels))

	for _, lvl := range pack.Levels {
		analyzeLevel(lvl)
	}
}

func analyzeLevel(lvl *levels.Level) {
	grid := lvl.Grid.Clone()
	grid.ClassifyFloors(lvl.Player.X, lvl.Player.Y)

	walls := 0
	inside := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			switch grid.Tiles[y][x].Kind {
			case engine.Wall:
				walls++
			case engine.InsideFloor:
				inside++
			}
		}
	}

	preCovered := 0
	for _, star := range lvl.Stars {
		for _, goal := range lvl.Goals {
			if star == goal {
				preCovered++
				break
			}
		}
	}

	// Sum of Manhattan distances from each star to its nearest goal. Crude,
	// but it separates warm-up levels from the long hauls.
	work := 0
	for _, star := range lvl.Stars {
		nearest := -1
		for _, goal := range lvl.Goals {
			d := abs(star.X-goal.X) + abs(star.Y-goal.Y)
			if nearest < 0 || d < nearest {
				nearest = d
			}
		}
		if nearest > 0 {
			work += nearest
		}
	}

	fmt.Printf("  Level %d: %dx%d | floor %d | walls %d | stars %d on %d goals (%d pre-covered) | min push distance %d %s\n",
		lvl.Number+1, lvl.Width, lvl.Height, inside, walls,
		len(lvl.Stars), len(lvl.Goals), preCovered, work, difficulty(work))
}

func difficulty(work int) string {
	switch {
	case work <= 4:
		return strings.Repeat("*", 1)
	case work <= 12:
		return strings.Repeat("*", 2)
	case work <= 30:
		return strings.Repeat("*", 3)
	default:
		return strings.Repeat("*", 4)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package levels

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/starpusher/starpusher/game/engine"
)

// Level is one parsed puzzle: its grid, goal set and starting positions.
type Level struct {
	Number int               `json:"number"` // zero-based index within the pack
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Grid   *engine.Grid      `json:"grid"`
	Goals  []engine.Position `json:"goals"`
	Player engine.Position   `json:"player"`
	Stars  []engine.Position `json:"stars"`
}

// Pack is an ordered collection of levels loaded from one file.
type Pack struct {
	Name   string   `json:"name"`
	Levels []*Level `json:"levels"`
}

// Level file characters:
//
//	#  wall            @  player start
//	.  goal            +  player on a goal
//	$  star            *  star on a goal
//	;  comment to end of line, blank line ends a level
const (
	charWall         = '#'
	charPlayer       = '@'
	charGoal         = '.'
	charPlayerOnGoal = '+'
	charStar         = '$'
	charStarOnGoal   = '*'
)

// Parse reads levels from r in the classic Sokoban text format. Each level
// ends at a blank line; short rows are padded with spaces so every level
// is rectangular. Malformed levels (no player start, no goals, fewer stars
// than goals) are load-time fatal errors.
func Parse(name string, r io.Reader) (*Pack, error) {
	scanner := bufio.NewScanner(r)
	pack := &Pack{Name: name}

	var rows []string
	lineNum := 0
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		level, err := buildLevel(name, len(pack.Levels), lineNum, rows)
		if err != nil {
			return err
		}
		pack.Levels = append(pack.Levels, level)
		rows = nil
		return nil
	}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		rows = append(rows, strings.TrimRight(line, "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", name, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("levels: pack %s contains no levels", name)
	}
	return pack, nil
}

// buildLevel converts the text rows of one level into a Level, validating
// the design constraints.
func buildLevel(packName string, number, endLine int, rows []string) (*Level, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	height := len(rows)

	grid := engine.NewGrid(width, height)
	var goals, stars []engine.Position
	player := engine.Position{X: -1, Y: -1}

	for y, row := range rows {
		for x := 0; x < width; x++ {
			var c byte = ' '
			if x < len(row) {
				c = row[x]
			}
			switch c {
			case charWall:
				grid.Tiles[y][x].Kind = engine.Wall
			case charPlayer:
				player = engine.Position{X: x, Y: y}
			case charPlayerOnGoal:
				player = engine.Position{X: x, Y: y}
				goals = append(goals, engine.Position{X: x, Y: y})
			case charGoal:
				goals = append(goals, engine.Position{X: x, Y: y})
			case charStar:
				stars = append(stars, engine.Position{X: x, Y: y})
			case charStarOnGoal:
				goals = append(goals, engine.Position{X: x, Y: y})
				stars = append(stars, engine.Position{X: x, Y: y})
			case ' ':
				// floor
			default:
				return nil, fmt.Errorf("levels: %s level %d (near line %d): invalid character %q at (%d,%d)",
					packName, number+1, endLine, c, x, y)
			}
		}
	}

	if player.X < 0 {
		return nil, fmt.Errorf("levels: %s level %d (near line %d): missing a %q or %q to mark the start point",
			packName, number+1, endLine, string(charPlayer), string(charPlayerOnGoal))
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("levels: %s level %d (near line %d): must have at least one goal",
			packName, number+1, endLine)
	}
	if len(stars) < len(goals) {
		return nil, fmt.Errorf("levels: %s level %d (near line %d): impossible to solve, %d goals but only %d stars",
			packName, number+1, endLine, len(goals), len(stars))
	}

	return &Level{
		Number: number,
		Width:  width,
		Height: height,
		Grid:   grid,
		Goals:  goals,
		Player: player,
		Stars:  stars,
	}, nil
}

package engine

import "strings"

// TileKind represents the logical kind of a grid tile
type TileKind string

const (
	Wall         TileKind = "wall"
	InsideFloor  TileKind = "inside_floor"
	OutsideFloor TileKind = "outside_floor"

	// Gameplay constants
	OutsideDecorationPct = 20 // percent chance an outside tile gets a decoration
	AvatarCount          = 5  // number of cosmetic player avatars to cycle through
	MaxSearchNodes       = 1 << 20
)

// Decoration is a cosmetic dressing on an outside floor tile. It never
// affects wall or blocking queries.
type Decoration string

const (
	NoDecoration Decoration = ""
	Rock         Decoration = "rock"
	ShortTree    Decoration = "short_tree"
	TallTree     Decoration = "tall_tree"
	UglyTree     Decoration = "ugly_tree"
)

// Decorations lists the variants used when dressing outside floor tiles.
var Decorations = []Decoration{Rock, ShortTree, TallTree, UglyTree}

// Tile is a single grid cell: its logical kind plus an optional cosmetic
// decoration layered on outside floor.
type Tile struct {
	Kind       TileKind   `json:"kind"`
	Decoration Decoration `json:"decoration,omitempty"`
}

// Position represents x,y tile coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit step vector. The zero value is a no-op direction.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// IsZero reports whether the direction is the zero vector.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// ParseDirection maps a direction name ("up", "down", "left", "right",
// any case) to its unit vector.
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(name) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Direction{}, false
	}
}

// String returns the direction's name, or "none" for vectors that are not
// one of the four unit steps.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// PlayerIndex marks a StepRecord as moving the player rather than a star.
const PlayerIndex = -1

// StepRecord is a single reversible displacement of the player or one star.
// Index is the star's position in GameState.Stars, or PlayerIndex.
type StepRecord struct {
	OldX  int `json:"old_x"`
	OldY  int `json:"old_y"`
	NewX  int `json:"new_x"`
	NewY  int `json:"new_y"`
	Index int `json:"index"`
}

// MoveRecord is an atomic move: one or two step records applied together.
// When a star is pushed its step precedes the player's step.
type MoveRecord []StepRecord

// GameState represents the complete mutable state of one level attempt.
// Every field carries a JSON tag so a persisted state restores bit-for-bit.
type GameState struct {
	Player      Position     `json:"player"`
	Stars       []Position   `json:"stars"`
	StepCounter int          `json:"step_counter"`
	PushCounter int          `json:"push_counter"`
	UndoStack   []MoveRecord `json:"undo_stack"`
	RedoStack   []MoveRecord `json:"redo_stack"`
}

// NewGameState creates a fresh attempt state from a level's starting
// player and star positions.
func NewGameState(player Position, stars []Position) *GameState {
	s := &GameState{
		Player:    player,
		Stars:     make([]Position, len(stars)),
		UndoStack: []MoveRecord{},
		RedoStack: []MoveRecord{},
	}
	copy(s.Stars, stars)
	return s
}

// StarAt returns the index of the star occupying (x, y), or -1.
func (gs *GameState) StarAt(x, y int) int {
	for i, star := range gs.Stars {
		if star.X == x && star.Y == y {
			return i
		}
	}
	return -1
}

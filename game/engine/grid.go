package engine

import "math/rand"

// Grid is the immutable-per-level tile matrix. Tiles is indexed [y][x].
type Grid struct {
	Tiles  [][]Tile `json:"tiles"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
}

// NewGrid creates a grid of the given size with every tile set to
// outside floor.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = Tile{Kind: OutsideFloor}
		}
	}
	return &Grid{Tiles: tiles, Width: width, Height: height}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Tiles: make([][]Tile, len(g.Tiles))}
	for y, row := range g.Tiles {
		c.Tiles[y] = make([]Tile, len(row))
		copy(c.Tiles[y], row)
	}
	return c
}

// InBounds reports whether (x, y) lies inside the playable area.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsWall reports whether (x, y) is a wall tile. Out-of-bounds coordinates
// are not walls; off-the-map checks belong to IsBlocked.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Tiles[y][x].Kind == Wall
}

// ClassifyFloors marks every floor tile reachable from the player's start
// tile as inside floor. The fill is 4-directional and stops at walls and
// grid edges; everything it cannot reach stays outside floor. Implemented
// with an explicit stack so large grids cannot hit recursion limits.
func (g *Grid) ClassifyFloors(startX, startY int) {
	if !g.InBounds(startX, startY) || g.Tiles[startY][startX].Kind != OutsideFloor {
		return
	}

	stack := []Position{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if g.Tiles[p.Y][p.X].Kind != OutsideFloor {
			continue
		}
		g.Tiles[p.Y][p.X].Kind = InsideFloor

		for _, d := range []Direction{Up, Down, Left, Right} {
			nx, ny := p.X+d.DX, p.Y+d.DY
			if g.InBounds(nx, ny) && g.Tiles[ny][nx].Kind == OutsideFloor {
				stack = append(stack, Position{X: nx, Y: ny})
			}
		}
	}
}

// Decorate randomly dresses outside floor tiles with cosmetic decorations.
// pct is the per-tile percentage chance. Decorations are rendering-only
// and never change wall or blocking queries.
func (g *Grid) Decorate(pct int, rng *rand.Rand) {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x].Kind == OutsideFloor && rng.Intn(100) < pct {
				g.Tiles[y][x].Decoration = Decorations[rng.Intn(len(Decorations))]
			}
		}
	}
}

package engine

import "container/heap"

// searchNode is one open-list entry in the A* search. The heap orders by
// f, then x, then y, which keeps path choice deterministic for fixtures
// without affecting shortest-path length.
type searchNode struct {
	f, x, y int
}

type openList []searchNode

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].x != o[j].x {
		return o[i].x < o[j].x
	}
	return o[i].y < o[j].y
}

func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x any) { *o = append(*o, x.(searchNode)) }

func (o *openList) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

// cellDetail carries per-cell A* bookkeeping: best known f/g and the
// parent pointer used for path reconstruction.
type cellDetail struct {
	parentX, parentY int
	f, g             int
}

const unboundedCost = int(^uint(0) >> 1)

// FindPath runs an A* search from the player's current tile to dest over
// walkable tiles. Stars, walls, and off-grid tiles block, exactly as for
// manual movement. The returned path is ordered destination to source so a
// consumer animates by repeatedly removing the last element; nil means no
// path was requested or none exists.
func FindPath(dest Position, grid *Grid, gs *GameState) []Position {
	src := gs.Player
	if IsBlocked(grid, gs, dest.X, dest.Y) || src == dest {
		return nil
	}

	closed := make([][]bool, grid.Height)
	details := make([][]cellDetail, grid.Height)
	for y := 0; y < grid.Height; y++ {
		closed[y] = make([]bool, grid.Width)
		details[y] = make([]cellDetail, grid.Width)
		for x := 0; x < grid.Width; x++ {
			details[y][x] = cellDetail{f: unboundedCost, g: unboundedCost}
		}
	}

	details[src.Y][src.X] = cellDetail{parentX: src.X, parentY: src.Y}

	open := openList{{f: 0, x: src.X, y: src.Y}}
	heap.Init(&open)

	// The grid is finite so the search always terminates, but cap the
	// work anyway in case of pathological inputs.
	for expanded := 0; open.Len() > 0 && expanded < MaxSearchNodes; expanded++ {
		node := heap.Pop(&open).(searchNode)
		closed[node.y][node.x] = true

		for _, d := range []Direction{Up, Down, Left, Right} {
			nx, ny := node.x+d.DX, node.y+d.DY
			if IsBlocked(grid, gs, nx, ny) || closed[ny][nx] {
				continue
			}

			if nx == dest.X && ny == dest.Y {
				// Shortest-first expansion order makes first contact with
				// the destination already optimal.
				details[ny][nx].parentX = node.x
				details[ny][nx].parentY = node.y
				return tracePath(details, dest)
			}

			g := details[node.y][node.x].g + 1
			h := manhattan(nx, ny, dest.X, dest.Y)
			f := g + h
			if details[ny][nx].f > f {
				heap.Push(&open, searchNode{f: f, x: nx, y: ny})
				details[ny][nx] = cellDetail{parentX: node.x, parentY: node.y, f: f, g: g}
			}
		}
	}

	return nil
}

// tracePath walks parent pointers from dest back to the source cell,
// which is its own parent. The result keeps that order: destination first,
// source last.
func tracePath(details [][]cellDetail, dest Position) []Position {
	var path []Position
	x, y := dest.X, dest.Y
	for {
		d := details[y][x]
		if d.parentX == x && d.parentY == y {
			break
		}
		path = append(path, Position{X: x, Y: y})
		x, y = d.parentX, d.parentY
	}
	path = append(path, Position{X: x, Y: y})
	return path
}

func manhattan(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

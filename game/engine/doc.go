// Package engine implements the Star Pusher puzzle core: the tile grid,
// the per-attempt game state, the move engine with undo/redo, and the
// mouse-click pathfinding assistant.
//
// The core types are:
//
//   - Grid: the immutable-per-level wall/floor matrix, with inside/outside
//     floor classification derived by flood fill from the player's start.
//   - GameState: the mutable attempt state - player position, star
//     positions, step/push counters, and the undo/redo stacks of
//     MoveRecords.
//   - GameEngine: wraps one level (grid + goals + starting positions) and
//     exposes manual movement, undo/redo, and path-driven movement.
//
// Movement rules: the player moves one tile at a time in the four cardinal
// directions. A star on the target tile is pushed one tile further if that
// tile is free; walls, other stars, and the grid edge block the push, in
// which case the whole move fails with no state change. Every successful
// move produces a reversible MoveRecord; a fresh move clears the redo
// stack.
//
// Pathfinding: FindPath runs a 4-directional A* search with a Manhattan
// heuristic and unit step cost, subject to the same blocking rules as
// manual movement. The PathFollower replays a found path one AttemptMove
// per tick so that pointer clicks animate the player across the grid.
//
// The level is solved when every goal tile is covered by a star. Solved
// state gates movement input until the level is restarted or changed;
// undo remains available and re-enters play.
//
// The package has no I/O and no logging; level loading lives in
// game/levels and persistence in game/session.
package engine

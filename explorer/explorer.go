package explorer

import (
	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/maze"
)

// ErrUnreachable is returned when the goal cannot be reached from start
// under current knowledge, or when no candidate wall is reachable from the
// robot's current position.
var ErrUnreachable = errors.New("explorer: unreachable")

// Result is the outcome of a planning pass.
type Result struct {
	// Finished is true when every wall on the optimistic shortest path is
	// already checked: no further exploration can narrow the route.
	Finished bool
	// Next is the wall coordinate the robot should drive toward. Valid
	// only when !Finished.
	Next maze.Coord
}

// Plan runs a two-stage BFS: a shortest-path search from start to goal
// treating Unchecked walls as passable, followed by a search outward from
// the unchecked walls on that path back to the robot's current position.
// It is driven per tick or on any wall update.
func Plan(store *maze.Store, start, goal, current maze.Coord) (Result, error) {
	width := store.Width()

	prev := bfsTree(store, width, start, goal)
	if _, ok := prev[goal]; !ok {
		return Result{}, ErrUnreachable
	}

	walls := unknownWallsOnPath(store, prev, start, goal)
	if len(walls) == 0 {
		return Result{Finished: true}, nil
	}

	next, ok := bfsToCurrent(store, width, walls, current)
	if !ok {
		return Result{}, ErrUnreachable
	}
	return Result{Next: next}, nil
}

// bfsTree runs the optimistic shortest-path search from start to goal,
// treating Unchecked walls as passable and Checked{present} walls as
// impassable. It returns a predecessor map covering every coordinate
// discovered before goal was reached.
func bfsTree(store *maze.Store, width int, start, goal maze.Coord) map[maze.Coord]maze.Coord {
	prev := map[maze.Coord]maze.Coord{start: start}
	queue := []maze.Coord{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node == goal {
			break
		}
		passable := func(c maze.Coord) bool {
			if _, seen := prev[c]; seen {
				return false
			}
			return store.WallState(c).Passable()
		}
		for _, next := range extendedNeighbors(node, width, passable) {
			prev[next] = node
			queue = append(queue, next)
		}
	}
	return prev
}

// unknownWallsOnPath walks the predecessor chain from goal back to start,
// collecting every wall coordinate on the path that is still Unchecked.
func unknownWallsOnPath(store *maze.Store, prev map[maze.Coord]maze.Coord, start, goal maze.Coord) []maze.Coord {
	var walls []maze.Coord
	cur := goal
	for {
		next, ok := prev[cur]
		if !ok {
			break
		}
		for _, c := range intermediateCoords(cur, next) {
			if store.WallState(c) == maze.Unchecked {
				walls = append(walls, c)
			}
		}
		if next == start {
			break
		}
		cur = next
	}
	return walls
}

// bfsToCurrent searches outward from the frontier of unchecked walls using
// immediate adjacency until current is discovered, returning current's
// predecessor in that search — the next wall the robot should drive
// toward. Ties are broken by the enumeration order of roots and neighbors.
func bfsToCurrent(store *maze.Store, width int, roots []maze.Coord, current maze.Coord) (maze.Coord, bool) {
	visited := make(map[maze.Coord]bool, len(roots))
	queue := make([]maze.Coord, 0, len(roots))
	for _, r := range roots {
		if !visited[r] {
			visited[r] = true
			queue = append(queue, r)
		}
	}
	accept := func(maze.Coord) bool { return true }
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range neighbors(node, width, accept) {
			if next == current {
				return node, true
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return maze.Coord{}, false
}

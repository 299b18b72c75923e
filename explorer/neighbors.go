// Package explorer implements the BFS planner: given current wall
// knowledge and a start/goal pair, it decides which wall the robot should
// drive toward next, or reports that no further exploration can narrow the
// shortest path.
package explorer

import "github.com/ardentmouse/firmware/maze"

// extendedNeighbors returns a wall coordinate's same-axis neighbors: for a
// top wall, the four adjacent right walls plus every top wall in the same
// column; for a right wall, the symmetric set in the same row. This models
// the mouse's ability to slide straight through multiple open cells in a
// single move. accept filters candidates (bounds, passability, visited);
// a same-axis scan stops at the first coordinate accept rejects.
func extendedNeighbors(c maze.Coord, width int, accept func(maze.Coord) bool) []maze.Coord {
	var out []maze.Coord
	try := func(dx, dy int, isTop bool) bool {
		nc, ok := relative(c, width, dx, dy, isTop)
		if !ok || !accept(nc) {
			return false
		}
		out = append(out, nc)
		return true
	}
	if c.IsTop {
		try(0, 0, false)
		try(-1, 0, false)
		try(0, 1, false)
		try(-1, 1, false)
		for dy := 1; ; dy++ {
			if !try(0, dy, true) {
				break
			}
		}
		for dy := 1; ; dy++ {
			if !try(0, -dy, true) {
				break
			}
		}
	} else {
		try(0, 0, true)
		try(0, -1, true)
		try(1, 0, true)
		try(1, -1, true)
		for dx := 1; ; dx++ {
			if !try(dx, 0, false) {
				break
			}
		}
		for dx := 1; ; dx++ {
			if !try(-dx, 0, false) {
				break
			}
		}
	}
	return out
}

// neighbors returns a wall coordinate's immediate neighbors: up to six
// adjacent wall coordinates, one move away.
func neighbors(c maze.Coord, width int, accept func(maze.Coord) bool) []maze.Coord {
	var out []maze.Coord
	try := func(dx, dy int, isTop bool) {
		if nc, ok := relative(c, width, dx, dy, isTop); ok && accept(nc) {
			out = append(out, nc)
		}
	}
	if c.IsTop {
		try(0, 0, false)
		try(0, -1, true)
		try(-1, 0, false)
		try(-1, 1, false)
		try(0, 1, false)
		try(0, 1, true)
	} else {
		try(0, 0, true)
		try(-1, 0, false)
		try(0, -1, true)
		try(1, -1, true)
		try(1, 0, false)
		try(1, 0, true)
	}
	return out
}

func relative(c maze.Coord, width, dx, dy int, isTop bool) (maze.Coord, bool) {
	x, y := c.X+dx, c.Y+dy
	if x < 0 || y < 0 || x >= width || y >= width {
		return maze.Coord{}, false
	}
	return maze.Coord{X: x, Y: y, IsTop: isTop}, true
}

// intermediateCoords returns the wall coordinates lying strictly between
// two extended-neighbors on a BFS path, including from but not to. from
// and to must be related by one extendedNeighbors step.
func intermediateCoords(from, to maze.Coord) []maze.Coord {
	if from.IsTop {
		if to.IsTop {
			lo, hi := from.Y, to.Y
			if lo > hi {
				lo, hi = hi, lo
			}
			var out []maze.Coord
			for y := lo; y <= hi; y++ {
				if y == to.Y {
					continue
				}
				out = append(out, maze.Coord{X: from.X, Y: y, IsTop: true})
			}
			return out
		}
		return []maze.Coord{from}
	}
	if to.IsTop {
		return []maze.Coord{from}
	}
	lo, hi := from.X, to.X
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []maze.Coord
	for x := lo; x <= hi; x++ {
		if x == to.X {
			continue
		}
		out = append(out, maze.Coord{X: x, Y: from.Y, IsTop: false})
	}
	return out
}

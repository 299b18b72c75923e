package operator

import (
	"math"

	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/maze"
)

// interpretObservation converts a pose-tagged distance reading into a wall
// coordinate update: it snaps the robot's heading to the nearest cardinal,
// locates the cell the robot currently occupies, and classifies the wall
// immediately ahead as present or absent depending on whether the reading
// falls short of a full square. ok is false when the implied coordinate
// falls outside the grid (e.g. the robot is at the boundary facing out).
func interpretObservation(pose geometry.Pose, distance, squareWidth float64, width int) (maze.Coord, maze.WallState, bool) {
	cardinal := nearestCardinal(pose.Theta)

	x := int(math.Floor(pose.X / squareWidth))
	y := int(math.Floor(pose.Y / squareWidth))

	var cx, cy int
	var isTop bool
	switch cardinal {
	case geometry.North:
		cx, cy, isTop = x, y, true
	case geometry.East:
		cx, cy, isTop = x, y, false
	case geometry.South:
		cx, cy, isTop = x, y-1, true
	case geometry.West:
		cx, cy, isTop = x-1, y, false
	}

	coord, err := maze.NewCoord(width, cx, cy, isTop)
	if err != nil {
		return maze.Coord{}, maze.Unchecked, false
	}

	state := maze.CheckedAbsent
	if distance < squareWidth {
		state = maze.CheckedPresent
	}
	return coord, state, true
}

// nearestCardinal rounds theta to the closest of the four cardinal
// directions.
func nearestCardinal(theta float64) geometry.AbsoluteDirection {
	const quarterTurn = math.Pi / 2
	steps := math.Round(theta / quarterTurn)
	switch int(math.Mod(steps+4, 4)) {
	case 0:
		return geometry.East
	case 1:
		return geometry.North
	case 2:
		return geometry.West
	default:
		return geometry.South
	}
}

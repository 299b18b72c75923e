package operator

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/maze"
)

const squareWidth = 0.18

func TestInterpretObservationFacingNorthMarksTopWallPresent(t *testing.T) {
	pose := geometry.NewPose(0.5*squareWidth, 0.5*squareWidth, math.Pi/2)
	coord, state, ok := interpretObservation(pose, 0.05, squareWidth, 4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, coord, test.ShouldResemble, maze.Coord{X: 0, Y: 0, IsTop: true})
	test.That(t, state, test.ShouldEqual, maze.CheckedPresent)
}

func TestInterpretObservationLongReadingMarksAbsent(t *testing.T) {
	pose := geometry.NewPose(0.5*squareWidth, 0.5*squareWidth, 0)
	coord, state, ok := interpretObservation(pose, squareWidth*2, squareWidth, 4)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, coord, test.ShouldResemble, maze.Coord{X: 0, Y: 0, IsTop: false})
	test.That(t, state, test.ShouldEqual, maze.CheckedAbsent)
}

func TestInterpretObservationOutOfRangeReportsNotOK(t *testing.T) {
	pose := geometry.NewPose(0.5*squareWidth, 0.5*squareWidth, math.Pi)
	_, _, ok := interpretObservation(pose, 0.05, squareWidth, 1)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNearestCardinalSnapsToClosestAxis(t *testing.T) {
	test.That(t, nearestCardinal(0.1), test.ShouldEqual, geometry.East)
	test.That(t, nearestCardinal(math.Pi/2-0.05), test.ShouldEqual, geometry.North)
	test.That(t, nearestCardinal(math.Pi-0.05), test.ShouldEqual, geometry.West)
	test.That(t, nearestCardinal(-math.Pi/2+0.05), test.ShouldEqual, geometry.South)
}

package maze

import (
	"testing"

	"go.viam.com/test"
)

func TestRoundTripEmptyMaze(t *testing.T) {
	const width = 4
	s := NewStore(width)
	out := Format(s)
	parsed := Parse(width, out)
	test.That(t, Format(parsed), test.ShouldEqual, out)
}

func TestRoundTripWithInteriorWalls(t *testing.T) {
	const width = 4
	s := NewStore(width)
	s.Update(Coord{X: 0, Y: 1, IsTop: true}, CheckedPresent)
	s.Update(Coord{X: 1, Y: 0, IsTop: false}, CheckedPresent)
	s.Update(Coord{X: 2, Y: 1, IsTop: true}, CheckedPresent)
	s.Update(Coord{X: 0, Y: 0, IsTop: true}, CheckedAbsent)

	out := Format(s)
	parsed := Parse(width, out)
	test.That(t, Format(parsed), test.ShouldEqual, out)

	test.That(t, parsed.WallState(Coord{X: 0, Y: 1, IsTop: true}), test.ShouldEqual, CheckedPresent)
	test.That(t, parsed.WallState(Coord{X: 1, Y: 0, IsTop: false}), test.ShouldEqual, CheckedPresent)
	test.That(t, parsed.WallState(Coord{X: 1, Y: 1, IsTop: true}), test.ShouldEqual, CheckedAbsent)
}

func TestParseMalformedProducesEmptyInterior(t *testing.T) {
	s := Parse(4, "garbage\nnot a maze")
	// Every representable wall the malformed input didn't describe falls
	// back to absent, except the perimeter the store always pre-marks.
	test.That(t, s.WallState(Coord{X: 1, Y: 1, IsTop: true}), test.ShouldEqual, CheckedAbsent)
	test.That(t, s.WallState(Coord{X: 3, Y: 3, IsTop: true}), test.ShouldEqual, CheckedPresent)
}

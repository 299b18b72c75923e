package maze

import (
	"testing"

	"go.viam.com/test"
)

func TestNewStorePerimeter(t *testing.T) {
	s := NewStore(4)
	for x := 0; x < 4; x++ {
		test.That(t, s.WallState(Coord{X: x, Y: 3, IsTop: true}), test.ShouldEqual, CheckedPresent)
		test.That(t, s.WallState(Coord{X: 3, Y: x, IsTop: false}), test.ShouldEqual, CheckedPresent)
	}
	test.That(t, s.WallState(Coord{X: 1, Y: 1, IsTop: true}), test.ShouldEqual, Unchecked)
	test.That(t, s.WallState(Coord{X: 1, Y: 1, IsTop: false}), test.ShouldEqual, Unchecked)
}

func TestUpdateMonotonicitySequence(t *testing.T) {
	s := NewStore(4)
	c := Coord{X: 1, Y: 1, IsTop: true}
	test.That(t, s.WallState(c), test.ShouldEqual, Unchecked)
	s.Update(c, CheckedPresent)
	test.That(t, s.WallState(c), test.ShouldEqual, CheckedPresent)
	// Callers enforce monotonicity; the store itself performs the write
	// unconditionally.
	s.Update(c, CheckedPresent)
	test.That(t, s.WallState(c), test.ShouldEqual, CheckedPresent)
}

func TestWallStatePassable(t *testing.T) {
	test.That(t, Unchecked.Passable(), test.ShouldBeTrue)
	test.That(t, CheckedAbsent.Passable(), test.ShouldBeTrue)
	test.That(t, CheckedPresent.Passable(), test.ShouldBeFalse)
}

func TestNewCoordRejectsOutOfRange(t *testing.T) {
	_, err := NewCoord(4, 4, 0, true)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCoord(4, -1, 0, true)
	test.That(t, err, test.ShouldNotBeNil)
	c, err := NewCoord(4, 2, 2, true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, Coord{X: 2, Y: 2, IsTop: true})
}

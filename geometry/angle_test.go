package geometry

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

func TestNormalizeAngleScenarios(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{deg(45), deg(45)},
		{deg(180), deg(180)},
		{deg(-45), deg(-45)},
		{deg(-300), deg(60)},
		{deg(-660), deg(60)},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		test.That(t, got, test.ShouldAlmostEqual, c.want, 1e-3)
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	for x := -20.0; x < 20.0; x += 0.37 {
		got := NormalizeAngle(x)
		test.That(t, got, test.ShouldBeGreaterThan, -math.Pi)
		test.That(t, got, test.ShouldBeLessThanOrEqualTo, math.Pi+1e-12)

		k := math.Round((x - got) / (2 * math.Pi))
		test.That(t, got+k*2*math.Pi, test.ShouldAlmostEqual, x, 1e-9)
	}
}

func TestSincAtZero(t *testing.T) {
	test.That(t, Sinc(0), test.ShouldAlmostEqual, 1.0, 1e-9)
}

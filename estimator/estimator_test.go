package estimator

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/mouseconfig"
)

func testConfig() mouseconfig.Config {
	return mouseconfig.Config{
		Period:                    0.001,
		EstimatorCutOffFrequency:  50,
		EstimatorCorrectionWeight: 0,
		SlipAngleConst:            0, // disabled
	}
}

func TestStepAdvancesForwardAlongHeading(t *testing.T) {
	cfg := testConfig()
	e := New(cfg, geometry.NewPose(0, 0, 0), logging.NewTestLogger(t))
	for i := 0; i < 1000; i++ {
		e.Step(WheelDisplacement{Left: 0.0001, Right: 0.0001}, 0, 0, nil)
	}
	state := e.State()
	test.That(t, state.X.Position, test.ShouldAlmostEqual, 0.1, 1e-6)
	test.That(t, state.Y.Position, test.ShouldAlmostEqual, 0.0, 1e-6)
}

func TestStepTurnsWithBodyOmega(t *testing.T) {
	cfg := testConfig()
	e := New(cfg, geometry.NewPose(0, 0, 0), logging.NewTestLogger(t))
	for i := 0; i < 1000; i++ {
		e.Step(WheelDisplacement{}, math.Pi/2, 0, nil)
	}
	state := e.State()
	test.That(t, state.Theta.Position, test.ShouldAlmostEqual, math.Pi/2, 1e-3)
}

func TestObservationCorrectionPullsPositionTowardMeasurement(t *testing.T) {
	cfg := testConfig()
	cfg.EstimatorCorrectionWeight = 0.5
	cfg.IgnoreRadiusFromPillar = 0
	cfg.IgnoreLengthFromWall = 0
	e := New(cfg, geometry.NewPose(0, 0, 0), logging.NewTestLogger(t))

	obs := []Observation{{
		SensorPose: geometry.NewPose(0, 0, 0),
		Distance:   1.0,
	}}
	e.Step(WheelDisplacement{}, 0, 0, obs)
	state := e.State()
	test.That(t, state.X.Position, test.ShouldAlmostEqual, 0.5, 1e-9)
}

func TestObservationIgnoredWithinRejectionZone(t *testing.T) {
	cfg := testConfig()
	cfg.EstimatorCorrectionWeight = 0.5
	cfg.IgnoreRadiusFromPillar = 0.02
	cfg.IgnoreLengthFromWall = 0.02
	e := New(cfg, geometry.NewPose(0, 0, 0), logging.NewTestLogger(t))

	obs := []Observation{{
		SensorPose: geometry.NewPose(0, 0, 0),
		Distance:   0.01,
	}}
	e.Step(WheelDisplacement{}, 0, 0, obs)
	state := e.State()
	test.That(t, state.X.Position, test.ShouldAlmostEqual, 0.0, 1e-9)
}

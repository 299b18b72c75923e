package tracker

import (
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/mouseconfig"
)

func testConfig() mouseconfig.Config {
	return mouseconfig.Config{
		KX: 10, KDX: 1, KY: 10, KDY: 1,
		TranslationalKP: 5, TranslationalKI: 0, TranslationalKD: 0,
		RotationalKP:           5,
		ValidControlLowerBound: 0.05,
		FailSafeDistance:       1.0,
		LowZeta:                1.0,
		LowB:                   1.0,
	}
}

func TestStepProducesZeroVoltagesAtRest(t *testing.T) {
	cfg := testConfig()
	tr, err := New(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	state := geometry.RobotState{}
	target := geometry.RobotState{}
	v, err := tr.Step(state, target, time.Millisecond)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Left, test.ShouldEqual, 0.0)
	test.That(t, v.Right, test.ShouldEqual, 0.0)
}

func TestStepDrivesForwardTowardMovingTarget(t *testing.T) {
	cfg := testConfig()
	tr, err := New(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	state := geometry.RobotState{}
	target := geometry.RobotState{}
	target.X.Position = 0.1
	target.X.Velocity = 0.2

	v, err := tr.Step(state, target, time.Millisecond)
	test.That(t, err, test.ShouldBeNil)
	// A target ahead and moving away, with no heading error, should
	// command both wheels forward.
	test.That(t, v.Left > 0, test.ShouldBeTrue)
	test.That(t, v.Right > 0, test.ShouldBeTrue)
}

func TestStepTripsFailSafeBeyondDistance(t *testing.T) {
	cfg := testConfig()
	tr, err := New(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	state := geometry.RobotState{}
	target := geometry.RobotState{}
	target.X.Position = 5.0

	_, err = tr.Step(state, target, time.Millisecond)
	test.That(t, err, test.ShouldEqual, ErrFailSafe)
	test.That(t, tr.Failed(), test.ShouldBeTrue)

	_, err = tr.Step(state, target, time.Millisecond)
	test.That(t, err, test.ShouldEqual, ErrFailSafe)
}

func TestResetClearsIntegratorNotFailSafe(t *testing.T) {
	cfg := testConfig()
	tr, err := New(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	tr.failed = true
	tr.Reset()
	test.That(t, tr.Failed(), test.ShouldBeTrue)
}

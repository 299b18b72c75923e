package operator

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ardentmouse/firmware/estimator"
	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/maze"
	"github.com/ardentmouse/firmware/mouseconfig"
	"github.com/ardentmouse/firmware/sensors/fake"
	"github.com/ardentmouse/firmware/tracker"
)

func testConfig() mouseconfig.Config {
	return mouseconfig.Config{
		SquareWidth:               0.18,
		Period:                    0.01,
		KX:                        10,
		KDX:                       1,
		KY:                        10,
		KDY:                       1,
		TranslationalKP:           5,
		RotationalKP:              5,
		ValidControlLowerBound:    0.05,
		FailSafeDistance:          1.0,
		LowZeta:                   1.0,
		LowB:                      1.0,
		MaxVelocity:               1.0,
		MaxAcceleration:           4.0,
		MaxJerk:                   40.0,
		SpinAngularVelocity:       10.0,
		SpinAngularAcceleration:   40.0,
		SpinAngularJerk:           400.0,
		SearchVelocity:            0.3,
		RunSlalomVelocity:         0.5,
		EstimatorCutOffFrequency:  50,
		EstimatorCorrectionWeight: 0,
		SlipAngleConst:            0,
	}
}

func newTestOperator(t *testing.T) (*Operator, *fake.Motor, *fake.Motor) {
	cfg := testConfig()
	logger := logging.NewTestLogger(t)
	est := estimator.New(cfg, geometry.NewPose(0.09, 0.09, 0), logger)
	trk, err := tracker.New(cfg, logger)
	test.That(t, err, test.ShouldBeNil)

	store := maze.NewStore(4)
	start, err := maze.NewCoord(4, 0, 0, true)
	test.That(t, err, test.ShouldBeNil)
	goal, err := maze.NewCoord(4, 2, 2, true)
	test.That(t, err, test.ShouldBeNil)

	leftEncoder := &fake.Encoder{}
	rightEncoder := &fake.Encoder{}
	imu := &fake.IMU{}
	leftMotor := fake.NewMotor(6.0)
	rightMotor := fake.NewMotor(6.0)

	op := New(cfg, store, start, goal, 0.016,
		leftEncoder, rightEncoder, imu, nil,
		leftMotor, rightMotor, est, trk, logger)
	return op, leftMotor, rightMotor
}

func TestTickWithNoTargetHoldsStill(t *testing.T) {
	op, leftMotor, rightMotor := newTestOperator(t)
	err := op.Tick(context.Background())
	test.That(t, err, test.ShouldBeNil)

	errKind, ticks := op.Status().Snapshot()
	test.That(t, errKind, test.ShouldEqual, ErrNone)
	test.That(t, ticks, test.ShouldEqual, uint64(1))
	test.That(t, leftMotor.Voltage(), test.ShouldEqual, 0.0)
	test.That(t, rightMotor.Voltage(), test.ShouldEqual, 0.0)
}

func TestTickRecordsSensorReadFailure(t *testing.T) {
	op, _, _ := newTestOperator(t)
	op.leftEncoder = failingEncoder{}
	err := op.Tick(context.Background())
	test.That(t, err, test.ShouldBeNil)

	errKind, _ := op.Status().Snapshot()
	test.That(t, errKind, test.ShouldEqual, ErrSensorRead)
}

type failingEncoder struct{}

func (failingEncoder) ReadAngle(ctx context.Context) (float64, error) {
	return 0, errors.New("sensor unavailable")
}

func TestCommandTransitionsIdleToSearch(t *testing.T) {
	op, _, _ := newTestOperator(t)
	test.That(t, op.Mode(), test.ShouldEqual, Idle)
	op.Command(Search)
	test.That(t, op.Mode(), test.ShouldEqual, Search)
}

func TestCommandIgnoresIllegalTransition(t *testing.T) {
	op, _, _ := newTestOperator(t)
	op.Command(FastRun)
	test.That(t, op.Mode(), test.ShouldEqual, Idle)
}

func TestRunSearchWaitsForWallUpdateSignal(t *testing.T) {
	op, _, _ := newTestOperator(t)
	op.Command(Search)
	err := op.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(op.queue.buf), test.ShouldEqual, 0)
}

func TestRunSearchEnqueuesAfterWallUpdate(t *testing.T) {
	op, _, _ := newTestOperator(t)
	op.Command(Search)
	op.wallUpdated.Store(true)
	err := op.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(op.queue.buf) > 0 || op.current != op.start, test.ShouldBeTrue)
}

func TestRunReturnSetupTransitionsToIdle(t *testing.T) {
	op, _, _ := newTestOperator(t)
	op.mode = ReturnSetup

	ctx := context.Background()
	const maxIterations = 10000
	for i := 0; i < maxIterations && op.Mode() != Idle; i++ {
		err := op.Run(ctx)
		test.That(t, err, test.ShouldBeNil)
		// Run only refills the bounded queue a few slots at a time; drain it
		// with Tick so the next Run can keep pumping the spin generator.
		op.Tick(ctx) //nolint:errcheck
	}
	test.That(t, op.Mode(), test.ShouldEqual, Idle)
}

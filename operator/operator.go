// Package operator ties the estimator, explorer, tracker, and trajectory
// generators together into the tick/run cooperative scheduler: a hard
// real-time tick step driven by a periodic interrupt, and a cooperative
// foreground run step driven in a loop by the caller.
package operator

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/ardentmouse/firmware/estimator"
	"github.com/ardentmouse/firmware/explorer"
	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/maze"
	"github.com/ardentmouse/firmware/mouseconfig"
	"github.com/ardentmouse/firmware/sensors"
	"github.com/ardentmouse/firmware/tracker"
	"github.com/ardentmouse/firmware/trajectory"
)

// Operator owns the explorer, estimator, tracker, and generator exclusively;
// nothing else holds a reference into them that outlives a single tick or
// run iteration.
type Operator struct {
	cfg mouseconfig.Config

	logger *logging.Logger

	mode Mode

	store           *maze.Store
	start, goal     maze.Coord
	current         maze.Coord
	wallUpdated     atomic.Bool
	lastWallByCoord map[maze.Coord]bool // at-most-once update tracking

	estimator *estimator.Estimator
	tracker   *tracker.Tracker

	queue       trajectoryQueue
	status      Status
	wheelRadius float64

	activeGenerator trajectory.Generator
	pendingTarget   geometry.Target
	havePending     bool

	leftEncoder, rightEncoder sensors.Encoder
	imu                       sensors.IMU
	distanceSensors           []sensors.DistanceSensor
	leftMotor, rightMotor     sensors.Motor
}

// New assembles an Operator from its sensor collaborators and wheel
// geometry. wheelRadius converts the encoder's angular reading into linear
// wheel displacement (meters/radian), a sensor-driver detail outside
// mouseconfig's scope.
func New(
	cfg mouseconfig.Config,
	store *maze.Store,
	start, goal maze.Coord,
	wheelRadius float64,
	leftEncoder, rightEncoder sensors.Encoder,
	imu sensors.IMU,
	distanceSensors []sensors.DistanceSensor,
	leftMotor, rightMotor sensors.Motor,
	est *estimator.Estimator,
	trk *tracker.Tracker,
	logger *logging.Logger,
) *Operator {
	return &Operator{
		cfg:             cfg,
		logger:          logger,
		mode:            Idle,
		store:           store,
		start:           start,
		goal:            goal,
		current:         start,
		lastWallByCoord: make(map[maze.Coord]bool),
		estimator:       est,
		tracker:         trk,
		wheelRadius:     wheelRadius,
		leftEncoder:     leftEncoder,
		rightEncoder:    rightEncoder,
		imu:             imu,
		distanceSensors: distanceSensors,
		leftMotor:       leftMotor,
		rightMotor:      rightMotor,
	}
}

// Mode returns the current top-level mode.
func (o *Operator) Mode() Mode { return o.mode }

// Command requests a mode transition triggered by an external event (a
// button press, a cancel). Any→Select and Idle→Search are always legal;
// other transitions happen automatically inside Tick/Run as their
// completion conditions are met.
func (o *Operator) Command(to Mode) {
	if to == Select || (o.mode == Idle && to == Search) {
		o.transition(to)
	}
}

func (o *Operator) transition(to Mode) {
	if to == Select || to == Idle {
		o.queue.Discard()
		o.activeGenerator = nil
		o.havePending = false
		o.leftMotor.Apply(context.Background(), 0)  //nolint:errcheck
		o.rightMotor.Apply(context.Background(), 0) //nolint:errcheck
	}
	if o.logger != nil && to != o.mode {
		o.logger.Infow("mode transition", "from", o.mode, "to", to)
	}
	o.mode = to
}

// Tick runs one hard-real-time step: estimator fusion, obstacle
// interpretation, and motor apply from the trajectory queue. It never
// blocks.
func (o *Operator) Tick(ctx context.Context) error {
	leftAngle, errL := o.leftEncoder.ReadAngle(ctx)
	rightAngle, errR := o.rightEncoder.ReadAngle(ctx)
	omega, errOmega := o.imu.AngularVelocity(ctx)
	_, lateralAccel, errAccel := o.imu.LinearAcceleration(ctx)
	if errL != nil || errR != nil || errOmega != nil || errAccel != nil {
		if o.logger != nil {
			o.logger.Warnw("sensor read failed, holding last tracker output",
				"leftEncoderErr", errL, "rightEncoderErr", errR, "omegaErr", errOmega, "accelErr", errAccel)
		}
		o.status.recordTick(ErrSensorRead)
		return nil
	}

	wheels := estimator.WheelDisplacement{
		Left:  leftAngle * o.wheelRadius,
		Right: rightAngle * o.wheelRadius,
	}

	var observations []estimator.Observation
	currentPose := o.estimator.State().Pose()
	for _, ds := range o.distanceSensors {
		dist, err := ds.Read(ctx)
		if err != nil {
			continue
		}
		sensorPose := geometry.NewPose(
			currentPose.X+ds.MountOffsetX(),
			currentPose.Y+ds.MountOffsetY(),
			geometry.NormalizeAngle(currentPose.Theta+ds.MountHeading()),
		)
		observations = append(observations, estimator.Observation{SensorPose: sensorPose, Distance: dist})
	}

	state := o.estimator.Step(wheels, omega, lateralAccel, observations)

	updated := false
	for _, obs := range observations {
		coord, wallState, ok := interpretObservation(obs.SensorPose, obs.Distance, o.cfg.SquareWidth, o.store.Width())
		if !ok || o.lastWallByCoord[coord] {
			continue
		}
		if o.store.WallState(coord) == maze.Unchecked {
			o.store.Update(coord, wallState)
			o.lastWallByCoord[coord] = true
			updated = true
		}
	}
	if updated {
		o.wallUpdated.Store(true)
	}

	target, _ := o.queue.TryDequeue()
	voltages, err := o.tracker.Step(state, target, o.tickPeriod())
	if err != nil {
		o.leftMotor.Apply(ctx, 0)  //nolint:errcheck
		o.rightMotor.Apply(ctx, 0) //nolint:errcheck
		o.status.recordTick(ErrTrackerFailSafe)
		return nil
	}
	o.leftMotor.Apply(ctx, voltages.Left)   //nolint:errcheck
	o.rightMotor.Apply(ctx, voltages.Right) //nolint:errcheck

	o.status.recordTick(ErrNone)
	return nil
}

func (o *Operator) tickPeriod() time.Duration {
	return time.Duration(o.cfg.Period * float64(time.Second))
}

// Status returns the tick-path status snapshot.
func (o *Operator) Status() *Status { return &o.status }

// Run performs one cooperative foreground iteration. It is driven in a
// loop by the caller; within Search it only acts once Tick has signaled a
// wall update, modeling a wait-for-signal handoff without an actual
// blocking primitive.
func (o *Operator) Run(ctx context.Context) error {
	switch o.mode {
	case Search:
		return o.runSearch(ctx)
	case FastRun:
		return o.runFastRun(ctx)
	case ReturnSetup:
		return o.runReturnSetup(ctx)
	default:
		return nil
	}
}

// pumpGenerator feeds an in-flight generator into the queue, carrying a
// single buffered-but-not-yet-enqueued target across calls so the queue's
// capacity-3 limit never drops a sample: a generator yields far more
// samples than the queue holds, so it almost always outlives several Run
// calls.
func (o *Operator) pumpGenerator() (exhausted bool) {
	for {
		if !o.havePending {
			t, ok := o.activeGenerator.Next()
			if !ok {
				return true
			}
			o.pendingTarget = t
			o.havePending = true
		}
		if !o.queue.Enqueue(o.pendingTarget) {
			return false
		}
		o.havePending = false
	}
}

func (o *Operator) runSearch(ctx context.Context) error {
	if o.activeGenerator != nil {
		if !o.pumpGenerator() {
			return nil
		}
		o.activeGenerator = nil
	}

	if !o.wallUpdated.CompareAndSwap(true, false) {
		return nil
	}
	result, err := explorer.Plan(o.store, o.start, o.goal, o.current)
	if err != nil {
		if o.logger != nil {
			o.logger.Errorw("goal unreachable with known walls, returning to select", "err", err)
		}
		o.transition(Select)
		return err
	}
	if result.Finished {
		if o.current == o.goal {
			o.transition(FastRun)
		}
		return nil
	}

	origin := cellCenterPose(o.current, o.cfg.SquareWidth)
	target := cellCenterPose(result.Next, o.cfg.SquareWidth)
	distance := origin.Distance(target)
	o.activeGenerator = trajectory.NewStraight(origin, distance, o.cfg.SearchVelocity, o.cfg.MaxAcceleration, o.cfg.MaxJerk, o.cfg.Period)
	o.current = result.Next
	o.pumpGenerator()
	return nil
}

func (o *Operator) runFastRun(ctx context.Context) error {
	if o.activeGenerator == nil {
		origin := cellCenterPose(o.current, o.cfg.SquareWidth)
		target := cellCenterPose(o.goal, o.cfg.SquareWidth)
		distance := origin.Distance(target)
		o.activeGenerator = trajectory.NewStraight(origin, distance, o.cfg.RunSlalomVelocity, o.cfg.MaxAcceleration, o.cfg.MaxJerk, o.cfg.Period)
		o.current = o.goal
	}
	if !o.pumpGenerator() {
		return nil
	}
	o.activeGenerator = nil
	o.transition(ReturnSetup)
	return nil
}

func (o *Operator) runReturnSetup(ctx context.Context) error {
	if o.activeGenerator == nil {
		origin := cellCenterPose(o.current, o.cfg.SquareWidth)
		o.activeGenerator = trajectory.NewSpin(origin, math.Pi, o.cfg.SpinAngularVelocity, o.cfg.SpinAngularAcceleration, o.cfg.SpinAngularJerk, o.cfg.Period)
	}
	if !o.pumpGenerator() {
		return nil
	}
	o.activeGenerator = nil
	o.transition(Idle)
	return nil
}

// cellCenterPose approximates the pose at a wall coordinate's owning
// cell center, heading East; callers only use the position component.
func cellCenterPose(c maze.Coord, squareWidth float64) geometry.Pose {
	return geometry.NewPose(
		(float64(c.X)+0.5)*squareWidth,
		(float64(c.Y)+0.5)*squareWidth,
		0,
	)
}

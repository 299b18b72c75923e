// Package estimator fuses wheel odometry, body gyro, and optional
// distance-sensor observations into the tracked RobotState at the tick
// period.
package estimator

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ardentmouse/firmware/control"
	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/mouseconfig"
)

// WheelDisplacement is the incremental linear distance each wheel traveled
// since the last tick, in meters.
type WheelDisplacement struct {
	Left, Right float64
}

// Observation is a pose-tagged distance-sensor reading: distance measured
// along the ray from sensorPose in its own heading direction.
type Observation struct {
	SensorPose geometry.Pose
	Distance   float64
}

// Estimator holds the fused RobotState and the filter/derivative blocks
// that smooth it.
type Estimator struct {
	cfg mouseconfig.Config

	logger *logging.Logger

	state geometry.RobotState

	vxFilter, vyFilter, omegaFilter control.Block
	axDeriv, ayDeriv, alphaDeriv    control.Block
}

// New builds an Estimator starting at the given initial pose, with zero
// velocity/acceleration, low-pass filtering velocities at
// cfg.EstimatorCutOffFrequency and differencing them for acceleration.
func New(cfg mouseconfig.Config, initial geometry.Pose, logger *logging.Logger) *Estimator {
	sampleRate := 1.0 / cfg.Period
	mk := func(name string) control.Block {
		b, err := control.New(control.BlockConfig{
			Name: name,
			Type: "low_pass",
			Attribute: map[string]interface{}{
				"order":          1.0,
				"cutoff_hz":      cfg.EstimatorCutOffFrequency,
				"sample_rate_hz": sampleRate,
			},
			DependsOn: []string{"in"},
		}, logger)
		if err != nil {
			panic(err) // static configuration, never fails after Validate
		}
		return b
	}
	mkDeriv := func(name string) control.Block {
		b, err := control.New(control.BlockConfig{
			Name:      name,
			Type:      "derivative",
			Attribute: map[string]interface{}{"derive_type": "backward1st1"},
			DependsOn: []string{"in"},
		}, logger)
		if err != nil {
			panic(err)
		}
		return b
	}

	e := &Estimator{
		cfg:          cfg,
		logger:       logger,
		vxFilter:     mk("vx"),
		vyFilter:     mk("vy"),
		omegaFilter:  mk("omega"),
		axDeriv:      mkDeriv("ax"),
		ayDeriv:      mkDeriv("ay"),
		alphaDeriv:   mkDeriv("alpha"),
	}
	e.state.X.Position = initial.X
	e.state.Y.Position = initial.Y
	e.state.Theta.Position = initial.Theta
	return e
}

// State returns the current fused state.
func (e *Estimator) State() geometry.RobotState { return e.state }

// Step fuses one tick's sensor readings into the state and returns the
// updated RobotState.
func (e *Estimator) Step(wheels WheelDisplacement, bodyOmega, bodyAccel float64, observations []Observation) geometry.RobotState {
	dt := e.cfg.Period
	theta := e.state.Theta.Position

	// Wheel odometry gives forward distance directly; heading rate comes
	// from the body gyro, optionally cross-checked against the wheel
	// differential when a wheel separation is configured.
	forward := stat.Mean([]float64{wheels.Left, wheels.Right}, nil)
	headingRate := bodyOmega
	if e.cfg.WheelInterval != nil && *e.cfg.WheelInterval > 0 {
		encoderRate := (wheels.Right - wheels.Left) / *e.cfg.WheelInterval / dt
		headingRate = (bodyOmega + encoderRate) / 2
	}
	headingDelta := headingRate * dt

	slip := 0.0
	if e.cfg.SlipAngleConst != 0 {
		slip = bodyAccel / e.cfg.SlipAngleConst
	}

	newTheta := geometry.NormalizeAngle(theta + headingDelta)
	moveHeading := theta + slip
	dx := forward * math.Cos(moveHeading)
	dy := forward * math.Sin(moveHeading)

	vxRaw := dx / dt
	vyRaw := dy / dt
	omegaRaw := headingRate

	vx := filterValue(e.vxFilter, vxRaw, dt)
	vy := filterValue(e.vyFilter, vyRaw, dt)
	omega := filterValue(e.omegaFilter, omegaRaw, dt)

	ax := filterValue(e.axDeriv, vx, dt)
	ay := filterValue(e.ayDeriv, vy, dt)
	alpha := filterValue(e.alphaDeriv, omega, dt)

	e.state.X.Position += dx
	e.state.Y.Position += dy
	e.state.Theta.Position = newTheta
	e.state.X.Velocity = vx
	e.state.Y.Velocity = vy
	e.state.Theta.Velocity = omega
	e.state.X.Acceleration = ax
	e.state.Y.Acceleration = ay
	e.state.Theta.Acceleration = alpha

	for _, obs := range observations {
		e.applyObservation(obs)
	}

	return e.state
}

func filterValue(b control.Block, x, dt float64) float64 {
	in := control.MakeSignal("in", 1)
	in.SetSignalValueAt(0, x)
	out, ok := b.Next(context.Background(), []control.Signal{in}, time.Duration(dt*float64(time.Second)))
	if !ok {
		return x
	}
	return out[0].GetSignalValueAt(0)
}

// applyObservation corrects position along the sensor's ray, weighted by
// EstimatorCorrectionWeight, rejecting any reading shorter than
// IgnoreRadiusFromPillar or IgnoreLengthFromWall (recovered from
// original_source's rejection logic, unwired in own component design).
// Where the ray ends relative to posts and wall planes is not examined.
func (e *Estimator) applyObservation(obs Observation) {
	w := e.cfg.EstimatorCorrectionWeight
	if w <= 0 {
		return
	}
	if obs.Distance < e.cfg.IgnoreRadiusFromPillar || obs.Distance < e.cfg.IgnoreLengthFromWall {
		if e.logger != nil {
			e.logger.Debugw("rejecting distance observation too close to a pillar or wall plane", "distance", obs.Distance)
		}
		return
	}
	measuredX := obs.SensorPose.X + obs.Distance*math.Cos(obs.SensorPose.Theta)
	measuredY := obs.SensorPose.Y + obs.Distance*math.Sin(obs.SensorPose.Theta)
	e.state.X.Position += w * (measuredX - e.state.X.Position)
	e.state.Y.Position += w * (measuredY - e.state.Y.Position)
}

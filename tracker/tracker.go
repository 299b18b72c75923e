// Package tracker maps (state, target) to a motor voltage pair via a
// nonlinear outer loop (longitudinal-velocity integrator with a
// high/low-velocity branch switch) feeding two independent inner PI(D)
// control loops, one translational and one rotational.
package tracker

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/control"
	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/mouseconfig"
)

// ErrFailSafe is returned once the robot has drifted further from its
// target than FailSafeDistance allows; it is permanent for the life of the
// Tracker — callers construct a new one to resume.
var ErrFailSafe = errors.New("tracker: fail-safe distance exceeded")

// Voltages is the (left, right) motor voltage pair a Tracker computes.
type Voltages struct {
	Left, Right float64
}

// Tracker holds the longitudinal-velocity integrator state and the two
// inner control loops.
type Tracker struct {
	cfg mouseconfig.Config

	logger *logging.Logger

	xi float64

	translational *innerLoop
	rotational    *innerLoop

	failed bool
}

// New builds a Tracker from cfg's outer gains (KX, KDX, KY, KDY), the
// high/low-velocity branch threshold (ValidControlLowerBound), the
// Kanayama gains (LowZeta, LowB), and the inner PID gains.
func New(cfg mouseconfig.Config, logger *logging.Logger) (*Tracker, error) {
	translational, err := newInnerLoop("translational", cfg.TranslationalKP, cfg.TranslationalKI, cfg.TranslationalKD, logger)
	if err != nil {
		return nil, err
	}
	rotational, err := newInnerLoop("rotational", cfg.RotationalKP, cfg.RotationalKI, cfg.RotationalKD, logger)
	if err != nil {
		return nil, err
	}
	return &Tracker{
		cfg:           cfg,
		logger:        logger,
		translational: translational,
		rotational:    rotational,
	}, nil
}

// Failed reports whether the fail-safe has already tripped.
func (t *Tracker) Failed() bool { return t.failed }

// Step computes one tick's motor voltages from the current robot state and
// reference target. Once the fail-safe trips it keeps returning
// ErrFailSafe and zero voltages.
func (t *Tracker) Step(state, target geometry.RobotState, dt time.Duration) (Voltages, error) {
	if t.failed {
		return Voltages{}, ErrFailSafe
	}

	dtSec := dt.Seconds()
	theta := state.Theta.Position

	dist := math.Hypot(target.X.Position-state.X.Position, target.Y.Position-state.Y.Position)
	if dist > t.cfg.FailSafeDistance {
		t.failed = true
		if t.logger != nil {
			t.logger.Errorw("fail-safe tripped: robot drifted past FailSafeDistance from target",
				"distance", dist, "limit", t.cfg.FailSafeDistance)
		}
		return Voltages{}, ErrFailSafe
	}

	ex := target.X.Position - state.X.Position
	ey := target.Y.Position - state.Y.Position
	ux := target.X.Acceleration + t.cfg.KDX*(target.X.Velocity-state.X.Velocity) + t.cfg.KX*ex
	uy := target.Y.Acceleration + t.cfg.KDY*(target.Y.Velocity-state.Y.Velocity) + t.cfg.KY*ey
	dux := target.X.Jerk + t.cfg.KDX*(target.X.Acceleration-state.X.Acceleration) + t.cfg.KX*(target.X.Velocity-state.X.Velocity)
	duy := target.Y.Jerk + t.cfg.KDY*(target.Y.Acceleration-state.Y.Acceleration) + t.cfg.KY*(target.Y.Velocity-state.Y.Velocity)

	cos, sin := math.Cos(theta), math.Sin(theta)
	dxi := ux*cos + uy*sin
	t.xi += dtSec * dxi

	var uV, uOmega, duV, duOmega float64
	if math.Abs(t.xi) > t.cfg.ValidControlLowerBound {
		uV = t.xi
		uOmega = (uy*cos - ux*sin) / t.xi
		duV = dxi
		duOmega = -(2*dxi*uOmega + dux*sin - duy*cos) / t.xi
	} else {
		vr := math.Hypot(target.X.Velocity, target.Y.Velocity)
		omegaR := target.Theta.Velocity
		thetaD := geometry.AngleDiff(target.Theta.Position, theta)
		k1 := 2 * t.cfg.LowZeta * math.Sqrt(omegaR*omegaR+t.cfg.LowB*vr*vr)
		uV = vr*math.Cos(thetaD) + k1*(ex*cos+ey*sin)
		uOmega = omegaR + t.cfg.LowB*vr*(-ex*sin+ey*cos)*geometry.Sinc(thetaD) + k1*thetaD

		sinThR, cosThR := math.Sin(target.Theta.Position), math.Cos(target.Theta.Position)
		duV = target.X.Acceleration*cosThR + target.Y.Acceleration*sinThR
		duOmega = target.Theta.Acceleration
	}

	measuredV := math.Hypot(state.X.Velocity, state.Y.Velocity)
	measuredOmega := state.Theta.Velocity

	vV := t.translational.Next(uV, measuredV, duV, dt)
	vOmega := t.rotational.Next(uOmega, measuredOmega, duOmega, dt)

	return Voltages{Left: vV - vOmega, Right: vV + vOmega}, nil
}

// Reset clears the longitudinal-velocity integrator and both inner loops,
// but does not clear a tripped fail-safe.
func (t *Tracker) Reset() {
	t.xi = 0
	t.translational.reset()
	t.rotational.reset()
}

// innerLoop is a PI(D) + feed-forward cascade assembled from control
// package primitives: an error Sum, a PID, a feed-forward Gain, and an
// output Sum, mirroring the way the control package composes blocks from a
// BlockConfig rather than a bespoke PID struct.
type innerLoop struct {
	errSum control.Block
	pid    control.Block
	ffGain control.Block
	outSum control.Block
}

func newInnerLoop(name string, kp, ki, kd float64, logger *logging.Logger) (*innerLoop, error) {
	errSum, err := control.New(control.BlockConfig{
		Name:      "error",
		Type:      "sum",
		Attribute: map[string]interface{}{"sum_string": "+-"},
		DependsOn: []string{"target", "measured"},
	}, logger)
	if err != nil {
		return nil, err
	}
	pid, err := control.New(control.BlockConfig{
		Name: "pid",
		Type: "pid",
		Attribute: map[string]interface{}{
			"Kp": kp, "Ki": ki, "Kd": kd,
		},
		DependsOn: []string{"error"},
	}, logger)
	if err != nil {
		return nil, err
	}
	ffGain, err := control.New(control.BlockConfig{
		Name:      "ff",
		Type:      "gain",
		Attribute: map[string]interface{}{"gain": 1.0},
		DependsOn: []string{"feedforward"},
	}, logger)
	if err != nil {
		return nil, err
	}
	outSum, err := control.New(control.BlockConfig{
		Name:      "out",
		Type:      "sum",
		Attribute: map[string]interface{}{"sum_string": "++"},
		DependsOn: []string{"pid", "ff"},
	}, logger)
	if err != nil {
		return nil, err
	}
	return &innerLoop{errSum: errSum, pid: pid, ffGain: ffGain, outSum: outSum}, nil
}

// Next computes one tick's output: a PI(D) correction on (target-measured)
// plus a feed-forward term carrying the reference's own derivative
// (acceleration for the translational loop, alpha for the rotational one),
// so the PID only has to correct for tracking error, not supply the whole
// command from scratch.
func (l *innerLoop) Next(target, measured, feedForward float64, dt time.Duration) float64 {
	targetSig := control.MakeSignal("target", 1)
	targetSig.SetSignalValueAt(0, target)
	measuredSig := control.MakeSignal("measured", 1)
	measuredSig.SetSignalValueAt(0, measured)

	errOut, ok := l.errSum.Next(context.Background(), []control.Signal{targetSig, measuredSig}, dt)
	if !ok {
		return 0
	}
	pidOut, ok := l.pid.Next(context.Background(), errOut, dt)
	if !ok {
		return 0
	}

	ffSig := control.MakeSignal("feedforward", 1)
	ffSig.SetSignalValueAt(0, feedForward)
	ffOut, ok := l.ffGain.Next(context.Background(), []control.Signal{ffSig}, dt)
	if !ok {
		return 0
	}
	finalOut, ok := l.outSum.Next(context.Background(), append(pidOut, ffOut...), dt)
	if !ok {
		return 0
	}
	return finalOut[0].GetSignalValueAt(0)
}

func (l *innerLoop) reset() {
	l.errSum.Reset()
	l.pid.Reset()
	l.ffGain.Reset()
	l.outSum.Reset()
}

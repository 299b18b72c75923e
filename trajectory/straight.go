package trajectory

import (
	"math"

	"github.com/ardentmouse/firmware/geometry"
)

// Generator produces a finite lazy sequence of targets at a fixed tick
// period. Next returns false once the trajectory is exhausted; a
// generator is restartable only by constructing a new one.
type Generator interface {
	Next() (geometry.Target, bool)
}

// Straight generates a jerk-limited straight-line move of length
// distance, starting at origin pose and heading, sampled every dt.
type Straight struct {
	profile scalarProfile
	origin  geometry.Pose
	sign    float64
	dt      float64
	elapsed float64
	done    bool
}

// NewStraight builds a straight-line generator of the given signed
// distance (negative reverses), saturating at vMax, aMax, jMax, ticking
// at period dt seconds.
func NewStraight(origin geometry.Pose, distance, vMax, aMax, jMax, dt float64) *Straight {
	sign := 1.0
	if distance < 0 {
		sign = -1
	}
	return &Straight{
		profile: newScalarProfile(math.Abs(distance), vMax, aMax, jMax),
		origin:  origin,
		sign:    sign,
		dt:      dt,
	}
}

func (s *Straight) Next() (geometry.Target, bool) {
	if s.done {
		return geometry.Target{}, false
	}
	t := s.elapsed
	s.elapsed += s.dt
	if t > s.profile.total {
		s.done = true
		return geometry.Target{}, false
	}
	pos, vel, acc, jerk := s.profile.sample(t)
	pos *= s.sign
	vel *= s.sign
	acc *= s.sign
	jerk *= s.sign

	cos, sin := math.Cos(s.origin.Theta), math.Sin(s.origin.Theta)
	target := geometry.Target{
		X: geometry.AxisState{
			Position:     s.origin.X + pos*cos,
			Velocity:     vel * cos,
			Acceleration: acc * cos,
			Jerk:         jerk * cos,
		},
		Y: geometry.AxisState{
			Position:     s.origin.Y + pos*sin,
			Velocity:     vel * sin,
			Acceleration: acc * sin,
			Jerk:         jerk * sin,
		},
		Theta: geometry.AxisState{Position: s.origin.Theta},
	}
	if t+s.dt > s.profile.total {
		s.done = true
	}
	return target, true
}

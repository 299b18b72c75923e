package trajectory

import (
	"math"

	"github.com/ardentmouse/firmware/geometry"
)

// Spin generates a jerk-limited in-place rotation from originTheta to
// originTheta+delta; translational velocity stays zero throughout.
type Spin struct {
	profile scalarProfile
	origin  geometry.Pose
	sign    float64
	dt      float64
	elapsed float64
	done    bool
}

// NewSpin builds a spin-in-place generator rotating by the signed angle
// delta (radians), saturating at omegaMax, alphaMax, betaMax (angular
// jerk), ticking at period dt seconds.
func NewSpin(origin geometry.Pose, delta, omegaMax, alphaMax, betaMax, dt float64) *Spin {
	sign := 1.0
	if delta < 0 {
		sign = -1
	}
	return &Spin{
		profile: newScalarProfile(math.Abs(delta), omegaMax, alphaMax, betaMax),
		origin:  origin,
		sign:    sign,
		dt:      dt,
	}
}

func (s *Spin) Next() (geometry.Target, bool) {
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
	target := geometry.Target{
		X: geometry.AxisState{Position: s.origin.X},
		Y: geometry.AxisState{Position: s.origin.Y},
		Theta: geometry.AxisState{
			Position:     geometry.NormalizeAngle(s.origin.Theta + s.sign*pos),
			Velocity:     s.sign * vel,
			Acceleration: s.sign * acc,
			Jerk:         s.sign * jerk,
		},
	}
	if t+s.dt > s.profile.total {
		s.done = true
	}
	return target, true
}

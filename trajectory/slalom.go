package trajectory

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ardentmouse/firmware/geometry"
)

// Slalom generates a constant-speed turn: entry velocity v is held fixed
// while heading follows a jerk-limited angular profile from originTheta
// through a total turn of angle, scaled by k = v/vRef so angular rate
// scales linearly, angular acceleration quadratically, and angular jerk
// cubically with the entry velocity. Position is obtained
// by Simpson integration of (v cosθ, v sinθ) per tick.
type Slalom struct {
	angular scalarProfile
	origin  geometry.Pose
	v, k    float64
	sign    float64
	dt      float64
	elapsed float64
	done    bool

	pos geometry.Pose // running integrated position
}

// NewSlalom builds a slalom generator turning by the signed angle
// (radians) at entry velocity v, referenced against vRef, with angular
// limits (omegaMax, alphaMax, betaMax) defined at vRef.
func NewSlalom(origin geometry.Pose, angle, v, vRef, omegaMax, alphaMax, betaMax, dt float64) *Slalom {
	sign := 1.0
	if angle < 0 {
		sign = -1
	}
	k := v / vRef
	return &Slalom{
		angular: newScalarProfile(math.Abs(angle), k*omegaMax, k*k*alphaMax, k*k*k*betaMax),
		origin:  origin,
		v:       v,
		k:       k,
		sign:    sign,
		dt:      dt,
		pos:     origin,
	}
}

func (s *Slalom) Next() (geometry.Target, bool) {
	if s.done {
		return geometry.Target{}, false
	}
	t := s.elapsed
	s.elapsed += s.dt
	if t > s.angular.total {
		s.done = true
		return geometry.Target{}, false
	}

	thetaRel, omega, alpha, beta := s.angular.sample(t)
	theta := geometry.NormalizeAngle(s.origin.Theta + s.sign*thetaRel)

	vx1, vy1 := s.v*math.Cos(theta), s.v*math.Sin(theta)

	// Simpson integration of the velocity vector over [t-dt, t], from the
	// previous tick's heading through the midpoint heading to the current
	// one, to keep |velocity| constant even as heading sweeps quickly. The
	// first sample (t == 0) is the origin itself.
	if t > 0 {
		thetaRelMid, _, _, _ := s.angular.sample(t - s.dt/2)
		thetaMid := geometry.NormalizeAngle(s.origin.Theta + s.sign*thetaRelMid)

		vx0, vy0 := s.v*math.Cos(s.pos.Theta), s.v*math.Sin(s.pos.Theta)
		vxm, vym := s.v*math.Cos(thetaMid), s.v*math.Sin(thetaMid)

		simpsonWeights := []float64{1, 4, 1}
		s.pos.X += (s.dt / 6) * floats.Dot(simpsonWeights, []float64{vx0, vxm, vx1})
		s.pos.Y += (s.dt / 6) * floats.Dot(simpsonWeights, []float64{vy0, vym, vy1})
	}
	s.pos.Theta = theta

	target := geometry.Target{
		X: geometry.AxisState{
			Position: s.pos.X,
			Velocity: vx1,
		},
		Y: geometry.AxisState{
			Position: s.pos.Y,
			Velocity: vy1,
		},
		Theta: geometry.AxisState{
			Position:     theta,
			Velocity:     s.sign * omega,
			Acceleration: s.sign * alpha,
			Jerk:         s.sign * beta,
		},
	}
	if t+s.dt > s.angular.total {
		s.done = true
	}
	return target, true
}

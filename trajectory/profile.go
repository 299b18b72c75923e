// Package trajectory produces finite lazy sequences of pose/velocity
// targets at a fixed tick period, for the straight, slalom, and
// spin-in-place moves the operator feeds to the tracker.
package trajectory

import "math"

// scalarProfile is a jerk-limited, symmetric 7-segment velocity profile
// from rest to rest (or to a cruise plateau) over a fixed displacement,
// grounded in rdk's trapezoidal-velocity-profile control block,
// generalized here from a single velocity channel into the shared
// jerk/accel/velocity/position building block straight-line and angular
// moves are both synthesized from.
type scalarProfile struct {
	segments []segment
	total    float64 // total duration, seconds
}

// segment is one constant-jerk interval: jerk is held fixed for the
// segment's duration, starting from the given boundary conditions.
type segment struct {
	duration     float64
	jerk         float64
	startAccel   float64
	startVel     float64
	startPos     float64
	startElapsed float64
}

// newScalarProfile builds a profile that moves distance d starting and
// ending at rest, saturating at vMax, aMax, jMax. d, vMax, aMax, jMax must
// all be positive; the caller is responsible for sign and axis framing.
func newScalarProfile(d, vMax, aMax, jMax float64) scalarProfile {
	tj, ta, dAccel := accelPhase(vMax, aMax, jMax)
	vPeak := vMax
	if 2*dAccel > d {
		// Distance too short to reach vMax: shrink the peak velocity
		// until the two (identical, symmetric) accel/decel phases
		// exactly consume the available distance.
		vPeak = solvePeakVelocity(d, aMax, jMax)
		tj, ta, dAccel = accelPhase(vPeak, aMax, jMax)
	}
	cruiseLen := d - 2*dAccel
	cruiseDur := 0.0
	if cruiseLen > 0 {
		cruiseDur = cruiseLen / vPeak
	}

	var segs []segment
	elapsed := 0.0
	pos, vel, acc := 0.0, 0.0, 0.0
	push := func(dur, jerk float64) {
		segs = append(segs, segment{
			duration: dur, jerk: jerk,
			startAccel: acc, startVel: vel, startPos: pos, startElapsed: elapsed,
		})
		pos, vel, acc = integrateConstJerk(pos, vel, acc, jerk, dur)
		elapsed += dur
	}

	push(tj, jMax)
	if ta > 0 {
		push(ta, 0)
	}
	push(tj, -jMax)
	if cruiseDur > 0 {
		push(cruiseDur, 0)
	}
	push(tj, -jMax)
	if ta > 0 {
		push(ta, 0)
	}
	push(tj, jMax)

	return scalarProfile{segments: segs, total: elapsed}
}

// accelPhase returns the jerk-segment duration tj, constant-accel
// duration ta, and distance covered by a one-sided rest-to-dv ramp
// (jerk up, constant accel, jerk down) under the given limits.
func accelPhase(dv, aMax, jMax float64) (tj, ta, dx float64) {
	tj = aMax / jMax
	dvAtAMax := aMax * tj // velocity gained by the two jerk segments alone
	if dvAtAMax >= dv {
		// Triangular: never reaches aMax.
		tj = math.Sqrt(dv / jMax)
		ta = 0
	} else {
		ta = (dv - dvAtAMax) / aMax
	}
	aPeak := jMax * tj

	// Closed-form distance for jerk-up(tj) + const-accel(ta) + jerk-down(tj),
	// starting from rest.
	v1 := 0.5 * jMax * tj * tj
	x1 := jMax * tj * tj * tj / 6
	v2 := v1 + aPeak*ta
	x2 := x1 + v1*ta + 0.5*aPeak*ta*ta
	x3 := x2 + v2*tj + aPeak*tj*tj/3
	return tj, ta, x3
}

// solvePeakVelocity finds, by bisection, the peak velocity whose
// (triangular or trapezoidal) accel phase exactly covers half of d.
func solvePeakVelocity(d, aMax, jMax float64) float64 {
	lo, hi := 0.0, math.Sqrt(d*aMax) + aMax*aMax/jMax + 1
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		_, _, dx := accelPhase(mid, aMax, jMax)
		if 2*dx > d {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// integrateConstJerk advances (pos, vel, acc) analytically over duration
// dt under constant jerk.
func integrateConstJerk(pos, vel, acc, jerk, dt float64) (newPos, newVel, newAcc float64) {
	newPos = pos + vel*dt + 0.5*acc*dt*dt + jerk*dt*dt*dt/6
	newVel = vel + acc*dt + 0.5*jerk*dt*dt
	newAcc = acc + jerk*dt
	return
}

// sample evaluates the profile at elapsed time t (clamped to [0, total]),
// returning (position, velocity, acceleration, jerk).
func (p scalarProfile) sample(t float64) (pos, vel, acc, jerk float64) {
	if t <= 0 {
		return 0, 0, 0, 0
	}
	if t >= p.total {
		t = p.total
	}
	for i, seg := range p.segments {
		end := seg.startElapsed + seg.duration
		if t <= end || i == len(p.segments)-1 {
			local := t - seg.startElapsed
			if local > seg.duration {
				local = seg.duration
			}
			pos, vel, acc = integrateConstJerk(seg.startPos, seg.startVel, seg.startAccel, seg.jerk, local)
			return pos, vel, acc, seg.jerk
		}
	}
	return
}

// Package sensors defines the plain Go contracts the firmware consumes
// from the robot's physical sensors and motors, in the external-collaborator
// idiom: interfaces only here, in-memory fakes in sensors/fake for tests
// and the simulator.
package sensors

import "context"

// Encoder reads a wheel's incremental angle since the last read,
// wrap-around safe within a uint16 tick counter.
type Encoder interface {
	ReadAngle(ctx context.Context) (float64, error)
}

// IMU reads the body's angular velocity (z-axis yaw rate) and linear
// acceleration.
type IMU interface {
	AngularVelocity(ctx context.Context) (float64, error)
	LinearAcceleration(ctx context.Context) (x, y float64, err error)
}

// DistanceSensor reads a distance along its own fixed pose relative to the
// robot body.
type DistanceSensor interface {
	Read(ctx context.Context) (float64, error)
	// MountOffsetX, MountOffsetY, MountHeading locate the sensor's ray
	// origin and direction in the robot's body frame.
	MountOffsetX() float64
	MountOffsetY() float64
	MountHeading() float64
}

// Motor applies a voltage, clamped by the implementation to
// [-VBat, +VBat].
type Motor interface {
	Apply(ctx context.Context, voltage float64) error
}

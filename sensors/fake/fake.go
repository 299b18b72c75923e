// Package fake provides deterministic, settable in-memory implementations
// of the sensors package's contracts: a fake behaves like a real, minimal
// sensor rather than a mock, and exposes exported setters tests drive
// directly.
package fake

import (
	"context"
	"sync"

	"github.com/ardentmouse/firmware/sensors"
)

// Encoder is a settable fake wheel encoder: SetAngle stages the next value
// ReadAngle returns.
type Encoder struct {
	mu    sync.Mutex
	angle float64
}

var _ sensors.Encoder = (*Encoder)(nil)

// SetAngle stages the angle the next ReadAngle call returns.
func (e *Encoder) SetAngle(angle float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.angle = angle
}

func (e *Encoder) ReadAngle(ctx context.Context) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.angle, nil
}

// IMU is a settable fake gyro/accelerometer.
type IMU struct {
	mu                   sync.Mutex
	angularVelocity      float64
	linAccelX, linAccelY float64
}

var _ sensors.IMU = (*IMU)(nil)

// SetAngularVelocity stages the value the next AngularVelocity call returns.
func (i *IMU) SetAngularVelocity(omega float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.angularVelocity = omega
}

// SetLinearAcceleration stages the values the next LinearAcceleration call
// returns.
func (i *IMU) SetLinearAcceleration(x, y float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.linAccelX, i.linAccelY = x, y
}

func (i *IMU) AngularVelocity(ctx context.Context) (float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.angularVelocity, nil
}

func (i *IMU) LinearAcceleration(ctx context.Context) (float64, float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.linAccelX, i.linAccelY, nil
}

// DistanceSensor is a settable fake distance sensor with a fixed mount
// pose in the robot body frame.
type DistanceSensor struct {
	mu       sync.Mutex
	distance float64

	offsetX, offsetY, heading float64
}

var _ sensors.DistanceSensor = (*DistanceSensor)(nil)

// NewDistanceSensor builds a fake distance sensor mounted at
// (offsetX, offsetY) in the body frame, pointed along heading (radians).
func NewDistanceSensor(offsetX, offsetY, heading float64) *DistanceSensor {
	return &DistanceSensor{offsetX: offsetX, offsetY: offsetY, heading: heading}
}

// SetDistance stages the value the next Read call returns.
func (d *DistanceSensor) SetDistance(distance float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.distance = distance
}

func (d *DistanceSensor) Read(ctx context.Context) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.distance, nil
}

func (d *DistanceSensor) MountOffsetX() float64 { return d.offsetX }
func (d *DistanceSensor) MountOffsetY() float64 { return d.offsetY }
func (d *DistanceSensor) MountHeading() float64 { return d.heading }

// Motor is a settable fake motor that records the last applied voltage and
// clamps to [-vBat, +vBat].
type Motor struct {
	mu      sync.Mutex
	voltage float64
	vBat    float64
}

var _ sensors.Motor = (*Motor)(nil)

// NewMotor builds a fake motor with the given battery voltage rail.
func NewMotor(vBat float64) *Motor {
	return &Motor{vBat: vBat}
}

func (m *Motor) Apply(ctx context.Context, voltage float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if voltage > m.vBat {
		voltage = m.vBat
	}
	if voltage < -m.vBat {
		voltage = -m.vBat
	}
	m.voltage = voltage
	return nil
}

// Voltage returns the last voltage actually applied (post-clamp).
func (m *Motor) Voltage() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.voltage
}

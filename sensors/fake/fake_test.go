package fake

import (
	"context"
	"testing"

	"go.viam.com/test"
)

func TestEncoderReadsStagedAngle(t *testing.T) {
	ctx := context.Background()
	e := &Encoder{}
	angle, err := e.ReadAngle(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle, test.ShouldEqual, 0.0)

	e.SetAngle(1.5)
	angle, err = e.ReadAngle(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, angle, test.ShouldEqual, 1.5)
}

func TestIMUReadsStagedValues(t *testing.T) {
	ctx := context.Background()
	i := &IMU{}
	i.SetAngularVelocity(0.3)
	i.SetLinearAcceleration(1.0, -2.0)

	omega, err := i.AngularVelocity(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, omega, test.ShouldEqual, 0.3)

	x, y, err := i.LinearAcceleration(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x, test.ShouldEqual, 1.0)
	test.That(t, y, test.ShouldEqual, -2.0)
}

func TestDistanceSensorReportsMountPose(t *testing.T) {
	ctx := context.Background()
	d := NewDistanceSensor(0.04, 0.0, 0.0)
	d.SetDistance(0.12)

	dist, err := d.Read(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dist, test.ShouldEqual, 0.12)
	test.That(t, d.MountOffsetX(), test.ShouldEqual, 0.04)
	test.That(t, d.MountOffsetY(), test.ShouldEqual, 0.0)
	test.That(t, d.MountHeading(), test.ShouldEqual, 0.0)
}

func TestMotorClampsToVBat(t *testing.T) {
	ctx := context.Background()
	m := NewMotor(6.0)

	err := m.Apply(ctx, 3.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Voltage(), test.ShouldEqual, 3.0)

	err = m.Apply(ctx, 10.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Voltage(), test.ShouldEqual, 6.0)

	err = m.Apply(ctx, -10.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Voltage(), test.ShouldEqual, -6.0)
}

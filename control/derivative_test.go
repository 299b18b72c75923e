package control

import (
	"context"
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/ardentmouse/firmware/logging"
)

func TestDerivativeConfig(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, c := range []struct {
		conf BlockConfig
		err  string
	}{
		{
			BlockConfig{
				Name:      "Derive1",
				Type:      "derivative",
				Attribute: map[string]interface{}{"derive_type": "backward1st1"},
				DependsOn: []string{"A"},
			},
			"",
		},
		{
			BlockConfig{
				Name:      "Derive1",
				Type:      "derivative",
				Attribute: map[string]interface{}{"derive_type": "backward5st1"},
				DependsOn: []string{"A"},
			},
			"unsupported derive_type backward5st1 for block Derive1",
		},
		{
			BlockConfig{
				Name:      "Derive1",
				Type:      "derivative",
				Attribute: map[string]interface{}{"derive_type": "backward2nd1"},
				DependsOn: []string{"A", "B"},
			},
			"derive block Derive1 only supports one input got 2",
		},
		{
			BlockConfig{
				Name:      "Derive1",
				Type:      "derivative",
				Attribute: map[string]interface{}{"derive_type2": "backward2nd1"},
				DependsOn: []string{"A"},
			},
			"derive block Derive1 doesn't have a derive_type field",
		},
	} {
		b, err := newDerivative(c.conf, logger)
		if c.err == "" {
			d := b.(*derivative)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, len(d.y), test.ShouldEqual, 1)
			test.That(t, len(d.y[0].signal), test.ShouldEqual, 1)
		} else {
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldResemble, c.err)
		}
	}
}

func TestDerivativeNext(t *testing.T) {
	const iter int = 3000
	logger := logging.NewTestLogger(t)
	ctx := context.Background()
	cfg := BlockConfig{
		Name:      "Derive1",
		Type:      "derivative",
		Attribute: map[string]interface{}{"derive_type": "backward2nd1"},
		DependsOn: []string{"A"},
	}
	b, err := newDerivative(cfg, logger)
	d := b.(*derivative)
	test.That(t, err, test.ShouldBeNil)

	const dt = 10 * time.Millisecond
	sig := MakeSignal("A", 1)
	for i := 0; i < iter; i++ {
		tSec := dt.Seconds() * float64(i)
		sig.SetSignalValueAt(0, math.Sin(tSec))
		out, ok := d.Next(ctx, []Signal{sig}, dt)
		test.That(t, ok, test.ShouldBeTrue)
		if i > 5 {
			test.That(t, out[0].GetSignalValueAt(0), test.ShouldAlmostEqual, math.Cos(tSec), 0.01)
		}
	}

	cfg = BlockConfig{
		Name:      "Derive1",
		Type:      "derivative",
		Attribute: map[string]interface{}{"derive_type": "backward1st1"},
		DependsOn: []string{"A"},
	}
	err = d.UpdateConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < iter; i++ {
		tSec := dt.Seconds() * float64(i)
		sig.SetSignalValueAt(0, math.Sin(tSec))
		out, ok := d.Next(ctx, []Signal{sig}, dt)
		test.That(t, ok, test.ShouldBeTrue)
		if i > 5 && i < iter-1 {
			test.That(t, out[0].GetSignalValueAt(0), test.ShouldAlmostEqual, math.Cos(tSec), 0.2)
		}
	}
}

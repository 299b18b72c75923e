package control

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// deriveType selects a backward finite-difference scheme, trading lag
// against noise sensitivity: higher order differences react faster to
// real changes but amplify sensor noise more.
type deriveType int

const (
	backward1st1 deriveType = iota // (x[n] - x[n-1]) / dt
	backward2nd1                   // (3x[n] - 4x[n-1] + x[n-2]) / 2dt
)

func parseDeriveType(s string) (deriveType, bool) {
	switch s {
	case "backward1st1":
		return backward1st1, true
	case "backward2nd1":
		return backward2nd1, true
	default:
		return 0, false
	}
}

// derivative differentiates its single input signal by backward finite
// difference.
type derivative struct {
	name       string
	deriveType deriveType
	input      string
	history    []float64 // history[0] is most recent
	y          []Signal
}

func newDerivative(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	d := &derivative{name: cfg.Name}
	if err := d.configure(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *derivative) configure(cfg BlockConfig) error {
	raw, ok := cfg.Attribute["derive_type"]
	if !ok {
		return errors.Errorf("derive block %s doesn't have a derive_type field", cfg.Name)
	}
	s, ok := raw.(string)
	if !ok {
		return errors.Errorf("derive block %s doesn't have a derive_type field", cfg.Name)
	}
	dt, ok := parseDeriveType(s)
	if !ok {
		return errors.Errorf("unsupported derive_type %s for block %s", s, cfg.Name)
	}
	if len(cfg.DependsOn) != 1 {
		return errors.Errorf("derive block %s only supports one input got %d", cfg.Name, len(cfg.DependsOn))
	}
	d.deriveType = dt
	d.input = cfg.DependsOn[0]
	d.history = nil
	d.y = []Signal{MakeSignal(cfg.Name, 1)}
	return nil
}

// UpdateConfig reconfigures the block in place, discarding history.
func (d *derivative) UpdateConfig(cfg BlockConfig) error {
	return d.configure(cfg)
}

func (d *derivative) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	in, ok := findSignal(inputs, d.input)
	if !ok {
		return nil, false
	}
	x := in.GetSignalValueAt(0)
	dtSec := dt.Seconds()

	var out float64
	switch d.deriveType {
	case backward2nd1:
		if len(d.history) < 2 || dtSec == 0 {
			out = 0
		} else {
			out = (3*x - 4*d.history[0] + d.history[1]) / (2 * dtSec)
		}
	default: // backward1st1
		if len(d.history) < 1 || dtSec == 0 {
			out = 0
		} else {
			out = (x - d.history[0]) / dtSec
		}
	}

	d.history = append([]float64{x}, d.history...)
	if len(d.history) > 2 {
		d.history = d.history[:2]
	}
	d.y[0].SetSignalValueAt(0, out)
	return d.y, true
}

func (d *derivative) Reset() {
	d.history = nil
}

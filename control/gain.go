package control

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// gain scales its single input signal by a constant factor.
type gain struct {
	name  string
	gain  float64
	input string
	y     []Signal
}

func newGain(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	if len(cfg.DependsOn) != 1 {
		return nil, errors.Errorf("invalid number of inputs for gain block %s expected 1 got %d", cfg.Name, len(cfg.DependsOn))
	}
	g, ok := cfg.Attribute["gain"]
	if !ok {
		return nil, errors.Errorf("gain block %s doesn't have a gain field", cfg.Name)
	}
	v, ok := g.(float64)
	if !ok {
		return nil, errors.Errorf("gain block %s doesn't have a gain field", cfg.Name)
	}
	return &gain{
		name:  cfg.Name,
		gain:  v,
		input: cfg.DependsOn[0],
		y:     []Signal{MakeSignal(cfg.Name, 1)},
	}, nil
}

func (b *gain) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	in, ok := findSignal(inputs, b.input)
	if !ok {
		return nil, false
	}
	b.y[0].SetSignalValueAt(0, b.gain*in.GetSignalValueAt(0))
	return b.y, true
}

func (b *gain) Reset() {}

package control

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// constant emits a fixed value every tick; it has no inputs.
type constant struct {
	name  string
	value float64
	y     []Signal
}

func newConstant(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	if len(cfg.DependsOn) != 0 {
		return nil, errors.Errorf("invalid number of inputs for constant block %s expected 0 got %d", cfg.Name, len(cfg.DependsOn))
	}
	raw, ok := cfg.Attribute["value"]
	if !ok {
		return nil, errors.Errorf("constant block %s doesn't have a value field", cfg.Name)
	}
	v, ok := raw.(float64)
	if !ok {
		return nil, errors.Errorf("constant block %s doesn't have a value field", cfg.Name)
	}
	return &constant{
		name:  cfg.Name,
		value: v,
		y:     []Signal{MakeSignal(cfg.Name, 1)},
	}, nil
}

func (b *constant) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	b.y[0].SetSignalValueAt(0, b.value)
	return b.y, true
}

func (b *constant) Reset() {}

package control

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// sum adds or subtracts its input signals according to a sign string, one
// character per input in DependsOn order.
type sum struct {
	name   string
	signs  []float64
	inputs []string
	y      []Signal
}

func newSum(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	raw, ok := cfg.Attribute["sum_string"]
	if !ok {
		return nil, errors.Errorf("sum block %s doesn't have a sum_string", cfg.Name)
	}
	str, ok := raw.(string)
	if !ok {
		return nil, errors.Errorf("sum block %s doesn't have a sum_string", cfg.Name)
	}
	if len(str) != len(cfg.DependsOn) {
		return nil, errors.Errorf("invalid number of inputs for sum block %s expected %d got %d", cfg.Name, len(str), len(cfg.DependsOn))
	}
	signs := make([]float64, len(str))
	for i, c := range str {
		switch c {
		case '+':
			signs[i] = 1
		case '-':
			signs[i] = -1
		default:
			return nil, errors.Errorf("expected +/- for sum block %s got %c", cfg.Name, c)
		}
	}
	return &sum{
		name:   cfg.Name,
		signs:  signs,
		inputs: cfg.DependsOn,
		y:      []Signal{MakeSignal(cfg.Name, 1)},
	}, nil
}

func (b *sum) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	var total float64
	for i, name := range b.inputs {
		in, ok := findSignal(inputs, name)
		if !ok {
			return nil, false
		}
		total += b.signs[i] * in.GetSignalValueAt(0)
	}
	b.y[0].SetSignalValueAt(0, total)
	return b.y, true
}

func (b *sum) Reset() {}

// Package control implements small, composable signal-processing blocks —
// PID, gain, sum, constant, derivative, low-pass — in rdk's
// Configure/Next/Reset block idiom, used by the tracker's inner control
// loops and the estimator's filtering stages.
package control

import (
	"context"
	"sync"
	"time"
)

// Signal carries a named scalar stream between blocks, plus the tick
// timestamps (in nanoseconds since an arbitrary epoch) each sample was
// produced at. Blocks with dimension > 1 pack multiple channels into a
// single Signal (e.g. a 2-D position stream).
type Signal struct {
	name      string
	signal    []float64
	time      []int
	dimension int
	mu        *sync.Mutex
}

// MakeSignal constructs a Signal of the given dimension, all channels
// zeroed.
func MakeSignal(name string, dimension int) Signal {
	return Signal{
		name:      name,
		signal:    make([]float64, dimension),
		time:      make([]int, dimension),
		dimension: dimension,
		mu:        &sync.Mutex{},
	}
}

// Name returns the signal's identifier.
func (s *Signal) Name() string { return s.name }

// GetSignalValueAt returns channel i's current value.
func (s *Signal) GetSignalValueAt(i int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signal[i]
}

// SetSignalValueAt writes channel i's value.
func (s *Signal) SetSignalValueAt(i int, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signal[i] = v
}

// BlockConfig describes one control block in a Configure call: its name,
// type (the block implementation to instantiate), free-form attributes,
// and upstream signal names it depends on.
type BlockConfig struct {
	Name      string
	Type      string
	Attribute map[string]interface{}
	DependsOn []string
}

// Block is the contract every control primitive satisfies: configure from
// a BlockConfig, advance one tick given the current named input signals
// and elapsed time, and reset internal state.
type Block interface {
	// Next advances the block by one tick. ok is false when the block has
	// no output yet.
	Next(ctx context.Context, inputs []Signal, dt time.Duration) (out []Signal, ok bool)
	// Reset clears all internal state (integrators, filter history).
	Reset()
}

func findSignal(inputs []Signal, name string) (Signal, bool) {
	for _, s := range inputs {
		if s.name == name {
			return s, true
		}
	}
	return Signal{}, false
}

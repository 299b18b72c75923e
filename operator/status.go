package operator

import "sync"

// ErrorKind classifies the last tick-path failure for the foreground loop
// to react to, without the foreground needing to inspect error values
// produced inside a hard-real-time context.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrSensorRead
	ErrTrackerFailSafe
)

// Status is a single snapshot struct written by tick and read by run: the
// last error kind plus a monotonic tick counter, so the foreground loop can
// detect both failures and progress without shared mutable access to tick
// internals.
type Status struct {
	mu    sync.Mutex
	err   ErrorKind
	ticks uint64
}

// Snapshot returns the current (errorKind, tickCount) pair.
func (s *Status) Snapshot() (ErrorKind, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err, s.ticks
}

func (s *Status) recordTick(err ErrorKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.ticks++
}

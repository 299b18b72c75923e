package operator

import (
	"sync"

	"github.com/ardentmouse/firmware/geometry"
)

const queueCapacity = 3

// trajectoryQueue is a small bounded ring buffer of reference targets,
// produced by the foreground run loop and consumed by the tick interrupt.
// Enqueue blocks (run is cooperative, never preempted mid-iteration); tick
// uses TryDequeue so the hot path never blocks — on contention or
// exhaustion it holds the last emitted target.
type trajectoryQueue struct {
	mu   sync.Mutex
	buf  []geometry.Target
	last geometry.Target
	have bool
}

// Enqueue appends a target, blocking only on the foreground-held lock.
// Reports false if the queue was already at capacity.
func (q *trajectoryQueue) Enqueue(t geometry.Target) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) >= queueCapacity {
		return false
	}
	q.buf = append(q.buf, t)
	return true
}

// TryDequeue attempts to pop the next target without blocking. On lock
// contention or an empty queue it returns the last emitted target and
// true in stale, indicating the caller should hold rather than apply a
// fresh target.
func (q *trajectoryQueue) TryDequeue() (target geometry.Target, stale bool) {
	if !q.mu.TryLock() {
		return q.last, true
	}
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return q.last, true
	}
	next := q.buf[0]
	q.buf = q.buf[1:]
	q.last = next
	q.have = true
	return next, false
}

// Discard empties the queue, used on any transition into Select or Idle.
func (q *trajectoryQueue) Discard() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = q.buf[:0]
}

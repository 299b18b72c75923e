package operator

import (
	"testing"

	"go.viam.com/test"

	"github.com/ardentmouse/firmware/geometry"
)

func TestEnqueueRespectsCapacity(t *testing.T) {
	var q trajectoryQueue
	for i := 0; i < queueCapacity; i++ {
		test.That(t, q.Enqueue(geometry.Target{}), test.ShouldBeTrue)
	}
	test.That(t, q.Enqueue(geometry.Target{}), test.ShouldBeFalse)
}

func TestTryDequeueDrainsInOrder(t *testing.T) {
	var q trajectoryQueue
	first := geometry.Target{X: geometry.AxisState{Position: 1}}
	second := geometry.Target{X: geometry.AxisState{Position: 2}}
	q.Enqueue(first)
	q.Enqueue(second)

	got, stale := q.TryDequeue()
	test.That(t, stale, test.ShouldBeFalse)
	test.That(t, got, test.ShouldResemble, first)

	got, stale = q.TryDequeue()
	test.That(t, stale, test.ShouldBeFalse)
	test.That(t, got, test.ShouldResemble, second)
}

func TestTryDequeueHoldsLastOnEmpty(t *testing.T) {
	var q trajectoryQueue
	only := geometry.Target{X: geometry.AxisState{Position: 5}}
	q.Enqueue(only)
	q.TryDequeue()

	got, stale := q.TryDequeue()
	test.That(t, stale, test.ShouldBeTrue)
	test.That(t, got, test.ShouldResemble, only)
}

func TestDiscardEmptiesQueue(t *testing.T) {
	var q trajectoryQueue
	q.Enqueue(geometry.Target{})
	q.Enqueue(geometry.Target{})
	q.Discard()
	test.That(t, len(q.buf), test.ShouldEqual, 0)
}

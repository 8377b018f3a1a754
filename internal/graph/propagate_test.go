package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPropagateMarksDirectSubscriberStaleAndTransitivePending builds
// a -> b -> c by hand (no scheduler involved) and checks Propagate's core
// distinction directly: a's immediate subscriber (b) is marked Stale
// because it's known to be reading a value that actually changed, while c
// — reached only through b — is marked Pending, since b might still
// recompute to an unchanged value.
func TestPropagateMarksDirectSubscriberStaleAndTransitivePending(t *testing.T) {
	rt := freshRuntime()

	a := sourceCell(1)
	b := derivedCell()
	c := derivedCell()

	runTracking(b, a)
	runTracking(c, b)

	b.removeState(StateStale)
	c.removeState(StateStale)

	Propagate(rt, a)

	assert.True(t, b.hasState(StateStale))
	assert.False(t, b.hasState(StatePending))
	assert.True(t, c.hasState(StatePending))
	assert.False(t, c.hasState(StateStale))
}

// TestPropagateSkipsAlreadyReachedCells checks the diamond case: d is
// reached twice (through b and through c), once with StatePending from
// each path, and must end up enqueued only once.
func TestPropagateSkipsAlreadyReachedCells(t *testing.T) {
	rt := freshRuntime()

	a := sourceCell(1)
	b := derivedCell()
	c := derivedCell()
	d := derivedCell()

	runTracking(b, a)
	runTracking(c, a)
	runTracking(d, b, c)

	b.removeState(StateStale)
	c.removeState(StateStale)
	d.removeState(StateStale)

	Propagate(rt, a)

	assert.True(t, b.hasState(StateStale))
	assert.True(t, c.hasState(StateStale))
	assert.True(t, d.hasState(StatePending))

	count := 0
	rt.heap.drain(func(cell *Cell) {
		if cell == d {
			count++
		}
	})
	assert.Equal(t, 1, count, "d must be enqueued exactly once despite being reached through both b and c")
}

// TestPropagateSkipsRecursiveCells ensures a cell already marked
// StateRecursive (caught in a prior reentrant evaluation) is not
// re-enqueued by a later propagation, so it can't drive the scheduler back
// into the same cycle.
func TestPropagateSkipsRecursiveCells(t *testing.T) {
	rt := freshRuntime()

	a := sourceCell(1)
	b := derivedCell()
	runTracking(b, a)
	b.removeState(StateStale)
	b.addState(StateRecursive)

	Propagate(rt, a)

	assert.True(t, b.hasState(StateStale | StateRecursive))
	assert.True(t, rt.heap.isEmpty(), "a cell marked StateRecursive must not be enqueued")
}

package graph

// propagateEntry is one unit of BFS work: a chain of subscriber links to
// walk, all of which should receive the same target flag if newly reached.
type propagateEntry struct {
	chain *Link
	flag  State
}

// Propagate walks forward from a cell that was just written (or whose
// recompute just produced a changed value), marking consumers
// Stale/Pending and handing reached cells to rt's scheduler (§4.3).
//
// from.subsHead is the first chain; its target flag is StateStale, since
// these subscribers are reading a value that really changed. Anything
// reached only transitively through a derived cell receives StatePending
// instead, because that derived cell might end up computing to the same
// value.
func Propagate(rt *Runtime, from *Cell) {
	if from.subsHead == nil {
		return
	}

	queue := []propagateEntry{{chain: from.subsHead, flag: StateStale}}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		for l := entry.chain; l != nil; l = l.nextSub {
			sub := l.sub

			if sub.hasState(StateStale | StatePending | StateRunning) {
				// Already propagating through this cell on an earlier step
				// of this same write; just raise the flag bit, don't walk
				// its subscribers again (they were already enqueued then).
				sub.addState(entry.flag)
				continue
			}

			sub.addState(entry.flag)

			if sub.hasState(StateRecursive) {
				// A cell that previously caught itself in a reentrant
				// evaluation is excluded from the scheduler to avoid
				// driving it back into the same loop.
				continue
			}

			rt.enqueue(sub)

			if sub.kind != KindEffect && sub.subsHead != nil {
				queue = append(queue, propagateEntry{chain: sub.subsHead, flag: StatePending})
			}
		}
	}
}

package graph

// Settle is the single entry point that guarantees a cell's value is
// current before it's read or, for an effect, before deciding whether to
// run it. It's called both directly (a host Read outside any flush) and
// from the heap drain inside Flush — one codepath, so a cell settled
// early by the former is simply skipped (already neither Stale nor
// Pending) when the scheduler reaches it later.
func Settle(rt *Runtime, cell *Cell) bool {
	if cell.owner != nil && cell.owner.Disposed() {
		// cell's scope was torn down after it was already queued/enqueued;
		// there is nothing left to settle.
		cell.removeState(StateStale | StatePending)
		rt.heap.remove(cell)
		return false
	}

	if cell.hasState(StateRunning) {
		// cell read itself, directly or through a cycle of other cells,
		// while its own recompute is still on the call stack. StartTracking
		// already cleared Stale/Pending for the run in progress, so without
		// this check the reentrant Settle would silently fall through to
		// "nothing to do" and hand back a value that was never actually
		// computed with the dependency it's about to be used for.
		cell.addState(StateRecursive)
		reportCellError(rt, cell, &CircularDependencyError{Cell: cell})
		return false
	}

	switch {
	case cell.hasState(StateStale):
		return settleRun(rt, cell)
	case cell.hasState(StatePending):
		if dirtyCheck(rt, cell) {
			return settleRun(rt, cell)
		}
		cell.removeState(StatePending)
		rt.heap.remove(cell)
		return false
	default:
		return false
	}
}

// settleRun dispatches a confirmed-dirty cell: a derived cell recomputes
// immediately (something downstream may need its fresh value right now),
// while an effect is only queued — its body runs later, in FIFO order,
// after the whole height-ordered heap has drained (§4.5).
func settleRun(rt *Runtime, cell *Cell) bool {
	if cell.kind == KindEffect {
		cell.removeState(StateStale | StatePending)
		rt.heap.remove(cell)
		switch cell.effectType {
		case EffectUser:
			rt.userQueue.push(cell)
		default:
			rt.renderQueue.push(cell)
		}
		return true
	}
	return recompute(rt, cell)
}

// activeComputation is the cell currently running its compute function, if
// any — the implicit "who is reading" that Read (api.go) hands to LinkDep
// (tracker.go) to attach new
// dependencies to. Scoped like activeOwner: one goroutine, one Runtime, one
// computation active at a time.
var activeComputation *Cell

// ActiveComputation returns the cell currently tracking reads, or nil if
// none (a write or read happening outside any compute body).
func ActiveComputation() *Cell { return activeComputation }

// recompute is the one place a cell's user-supplied compute function is
// ever invoked, for both derived cells and effects. It re-establishes the
// cell's dependency list from scratch (StartTracking/LinkDep calls made by
// reads inside compute/EndTracking), recovers a panic into a ComputeError
// rather than letting it escape, and — for a derived cell whose value
// actually changed — propagates that change onward.
//
// Returns whether the cell's observable output changed: a new committed
// value for a derived cell, or simply "it ran" for an effect (effects have
// no subscribers for this to matter to, but dirtyCheck's bubbling only ever
// calls recompute on derived cells — see its doc comment — so that case
// never actually reaches an effect through this return value).
func recompute(rt *Runtime, cell *Cell) bool {
	// The common reentrant-read case is already caught by Settle before it
	// ever calls here; this guard covers dirtyCheck's direct recompute
	// calls, which bypass Settle entirely while walking a Pending cell's
	// own dependency chain.
	if cell.hasState(StateRunning) {
		cell.addState(StateRecursive)
		reportCellError(rt, cell, &CircularDependencyError{Cell: cell})
		return false
	}

	rt.heap.remove(cell)

	if cell.owner != nil {
		// Tear down any nested scopes this cell created, then run its own
		// cleanup callbacks (registered via OnCleanup during its last run) —
		// children first, as Owner.dispose does — before re-running it.
		cell.owner.DisposeChildren()
		cell.owner.runCleanups()
	}

	prevComputation := activeComputation
	prevOwner := activeOwner
	activeComputation = cell
	activeOwner = cell.owner
	// Cleared for the run so a reentrant read caught during it shows up.
	wasRecursive := cell.hasState(StateRecursive)
	cell.removeState(StateRecursive)
	StartTracking(cell)

	var result any
	var panicked any
	func() {
		defer func() { panicked = recover() }()
		result = cell.compute()
	}()

	EndTracking(cell)
	activeComputation = prevComputation
	activeOwner = prevOwner
	caughtCycle := cell.hasState(StateRecursive)
	if wasRecursive {
		cell.addState(StateRecursive)
	}

	if panicked != nil {
		cell.removeState(StateStale | StatePending)
		// An owner catcher (OnError) receives the raw value passed to
		// panic; only the fallback to the runtime-wide reporter wraps it in
		// a ComputeError, since that path has no owner-scoped context to
		// hand the caller.
		handled := cell.owner != nil && cell.owner.reportError(panicked)
		if !handled {
			rt.reportError(&ComputeError{Cell: cell, Cause: panicked})
		}
		return false
	}

	if caughtCycle {
		// A reentrant read of cell was reported during this run: the result
		// is discarded and cell keeps its prior value.
		cell.removeState(StateStale | StatePending)
		return false
	}

	if cell.kind == KindEffect {
		cell.value = result
		cell.removeState(StateStale | StatePending)
		return true
	}

	changed := cell.setValue(result)
	cell.removeState(StateStale | StatePending)

	if changed {
		Propagate(rt, cell)
	}

	return changed
}

package graph

import (
	"sync"

	"github.com/petermattis/goid"
)

// effectQueue is a plain FIFO of pending effect runs, ported from the
// teacher's internal/queue.go EffectQueue — drained strictly after the
// height-ordered heap empties (§4.5, §8.3).
type effectQueue struct {
	items []*Cell
}

func (q *effectQueue) push(c *Cell) { q.items = append(q.items, c) }

func (q *effectQueue) drain(fn func(*Cell)) {
	for len(q.items) > 0 {
		item := q.items[0]
		q.items = q.items[1:]
		fn(item)
	}
}

func (q *effectQueue) empty() bool { return len(q.items) == 0 }

// watchdogLimit bounds the number of scheduler rounds a single Flush will
// run before giving up and reporting an InfiniteLoopError, guarding against
// an effect that keeps re-triggering itself or another effect forever.
// Ported from the teacher's Scheduler.Run hard-coded round cap.
const watchdogLimit = 100_000

// Runtime owns one reactive graph's live scheduling state: the
// height-bucketed heap, the two post-drain effect FIFOs, batch nesting
// depth, the settled-callback queue, the root owner and the error reporter.
// Exactly one Runtime exists per goroutine that touches the graph (see
// GetRuntime), realizing the single-threaded cooperative model of §5
// without requiring any locking inside a Runtime itself. The currently
// tracking consumer and the active owner are not part of it: they are the
// package-level activeComputation and activeOwner.
type Runtime struct {
	heap *heap

	renderQueue effectQueue
	userQueue   effectQueue

	batchDepth int
	flushing   bool

	settledQueue []func()

	root *Owner

	reporter ErrorReporter
}

var (
	runtimesMu sync.Mutex
	runtimes   = map[int64]*Runtime{}
)

// GetRuntime returns the Runtime bound to the calling goroutine, creating
// one on first use. Ported from the teacher's goid-keyed runtime lookup.
// Only the scheduling state is per goroutine: activeComputation and
// activeOwner are package-level and shared, unsynchronized, by every
// goroutine.
func GetRuntime() *Runtime {
	id := goid.Get()

	runtimesMu.Lock()
	defer runtimesMu.Unlock()

	rt, ok := runtimes[id]
	if !ok {
		rt = &Runtime{heap: newHeap(16)}
		rt.root = NewOwner(nil)
		runtimes[id] = rt
	}
	return rt
}

// DropRuntime releases the Runtime bound to the calling goroutine. Intended
// for tests and for goroutine pools that want to forget a finished
// worker's graph.
func DropRuntime() {
	id := goid.Get()
	runtimesMu.Lock()
	defer runtimesMu.Unlock()
	delete(runtimes, id)
}

// SetErrorReporter installs the callback recovered errors are delivered to.
func (rt *Runtime) SetErrorReporter(r ErrorReporter) { rt.reporter = r }

func (rt *Runtime) reportError(err error) {
	if rt.root != nil && rt.root.reportError(err) {
		return
	}
	if rt.reporter != nil {
		rt.reporter(err)
	}
}

// RootOwner returns the runtime's top-level owner scope.
func (rt *Runtime) RootOwner() *Owner { return rt.root }

// enqueue hands a newly Stale/Pending cell to the scheduler. Every kind —
// derived cell or effect alike — goes onto the height heap first, so it is
// settled through Settle/dirtyCheck in dependency order before anything
// happens: a Pending effect must get the same "confirm a dependency
// actually changed before running" treatment a Pending derived cell gets
// (§4.4, §4.5). Only once settleRun confirms an effect is genuinely dirty
// does it get pushed onto its render/user FIFO for the final run, in queue
// order rather than height order.
func (rt *Runtime) enqueue(cell *Cell) {
	rt.heap.insert(cell)
}

// BatchBegin increments the nesting depth. Writes made while depth > 0
// still propagate immediately (dependents are marked Stale/Pending right
// away) but the scheduler does not drain until the outermost BatchEnd.
func (rt *Runtime) BatchBegin() {
	rt.batchDepth++
}

// BatchEnd decrements the nesting depth and, if it reaches zero, flushes.
func (rt *Runtime) BatchEnd() {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.Flush()
	}
}

// InBatch reports whether a batch is currently open.
func (rt *Runtime) InBatch() bool { return rt.batchDepth > 0 }

// ScheduleFlush drains the scheduler immediately unless a batch is open, in
// which case it's deferred to BatchEnd.
func (rt *Runtime) ScheduleFlush() {
	if rt.batchDepth > 0 {
		return
	}
	rt.Flush()
}

// Flush drains the height heap, settling every queued derived cell (and,
// transitively through dirtyCheck, every effect's dependencies), then runs
// every queued render effect, then every queued user effect, then every
// queued OnSettled callback once all of those are empty — repeating the whole
// cycle if any of that work enqueued more — until every queue is empty.
func (rt *Runtime) Flush() {
	if rt.flushing {
		// A write happened from inside an effect body that's already
		// running as part of an enclosing Flush; that Flush's own loop
		// will pick the new work up.
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	rounds := 0
	for !rt.heap.isEmpty() || !rt.renderQueue.empty() || !rt.userQueue.empty() || len(rt.settledQueue) > 0 {
		rounds++
		if rounds > watchdogLimit {
			rt.reportError(&InfiniteLoopError{})
			rt.drainDiscard()
			return
		}

		rt.heap.drain(func(cell *Cell) {
			Settle(rt, cell)
		})

		rt.renderQueue.drain(func(cell *Cell) {
			runEffect(rt, cell)
		})

		rt.userQueue.drain(func(cell *Cell) {
			runEffect(rt, cell)
		})

		if rt.heap.isEmpty() && rt.renderQueue.empty() && rt.userQueue.empty() {
			settled := rt.settledQueue
			rt.settledQueue = nil
			for _, fn := range settled {
				fn()
			}
		}
	}
}

// drainDiscard empties every queue without running anything further, used
// only when the watchdog trips.
func (rt *Runtime) drainDiscard() {
	rt.heap.drain(func(*Cell) {})
	rt.renderQueue.items = nil
	rt.userQueue.items = nil
	rt.settledQueue = nil
}

// OnSettled registers fn to run once the current flush (if one is already
// running) or the next one (if and when something schedules one) fully
// drains — every derived cell resolved, every effect run. It does not
// force a flush of its own: with nothing pending, fn simply waits.
// Ported from the teacher's sig_settled_test.go surface; not in spec.md's
// text but not excluded by its Non-goals either (§8.3).
func (rt *Runtime) OnSettled(fn func()) {
	rt.settledQueue = append(rt.settledQueue, fn)
}

func runEffect(rt *Runtime, cell *Cell) {
	if cell.owner != nil && cell.owner.Disposed() {
		return
	}
	recompute(rt, cell)
}

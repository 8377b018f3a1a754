package graph

// Kind identifies what a Cell represents. The graph is uniform: a Cell is the
// same record regardless of kind, and behavior diverges by branching on Kind
// in the handful of places that actually need to (read, write, recompute,
// propagate-notify, dirty-check).
type Kind uint8

const (
	KindSource Kind = iota
	KindDerived
	KindEffect
)

// State is a bitset tracked alongside Kind on every Cell.
type State uint16

const (
	StateNone State = 0

	// StateStale means the cell must recompute unconditionally the next time
	// it is read or reached by the scheduler.
	StateStale State = 1 << iota

	// StatePending means the cell might need to recompute; a dirty check on
	// its dependencies must confirm before a recompute actually happens.
	StatePending

	// StateRunning means the cell is mid-evaluation. No other evaluation of
	// the same cell may begin while this is set.
	StateRunning

	// StateQueued means the cell already has a pending entry in the
	// scheduler's heap, used to prevent double-enqueue.
	StateQueued

	// StateRecursive marks a cell that was caught evaluating itself
	// reentrantly. Once set, propagation skips enqueuing it so a
	// self-referential cell can't drive the scheduler into an infinite loop.
	StateRecursive
)

func (s State) has(f State) bool { return s&f != 0 }

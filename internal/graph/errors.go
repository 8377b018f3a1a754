package graph

import "fmt"

// CircularDependencyError is reported when a cell's compute is caught
// reading itself, directly or transitively, while it is already Running
// (§7 "reentrant evaluation of the same cell"). The cell is left at its
// prior value and marked StateRecursive so later propagations skip it.
type CircularDependencyError struct {
	Cell *Cell
}

func (e *CircularDependencyError) Error() string {
	name := e.Cell.name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("reactor: circular dependency detected at cell %q", name)
}

// ComputeError wraps a panic recovered from a cell's user-supplied compute
// function. The cell keeps its prior value; its dependents are not
// propagated through.
type ComputeError struct {
	Cell  *Cell
	Cause any
}

func (e *ComputeError) Error() string {
	name := "<unnamed>"
	if e.Cell != nil && e.Cell.name != "" {
		name = e.Cell.name
	}
	return fmt.Sprintf("reactor: compute panicked at cell %q: %v", name, e.Cause)
}

func (e *ComputeError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// InfiniteLoopError aborts a flush that drains more than the watchdog limit
// of scheduler rounds — a guard against a self-triggering effect, ported
// from the teacher's Scheduler.Run count check.
type InfiniteLoopError struct{}

func (e *InfiniteLoopError) Error() string {
	return "reactor: potential infinite update loop detected"
}

// ErrorReporter receives errors the engine recovers from internally.
// Recovery is always local — the graph keeps functioning regardless of
// whether a reporter is installed or what it does with the error.
type ErrorReporter func(error)

// reportCellError delivers err to cell's owner chain first — unlike a
// recovered panic, err already carries no host-supplied payload to
// preserve, so the owner catcher and the runtime-wide fallback both see
// the same value — and only falls back to rt's ErrorReporter if no
// ancestor owner catches it.
func reportCellError(rt *Runtime, cell *Cell, err error) {
	if cell.owner != nil && cell.owner.reportError(err) {
		return
	}
	rt.reportError(err)
}

package graph

// NewSource creates a source cell holding initial, with no compute function
// — only Write ever changes its value (§2, §6).
func NewSource(initial any, equals Equals) *Cell {
	return NewCell(KindSource, initial, nil, equals)
}

// NewDerived creates a derived cell whose value is produced by compute.
// It starts Stale; nothing runs until it's first read.
func NewDerived(compute func() any, equals Equals) *Cell {
	c := NewCell(KindDerived, nil, compute, equals)
	c.owner = NewOwner(activeOwner)
	c.owner.cell = c
	return c
}

// NewEffect creates and immediately runs an effect cell scheduled on rt.
// compute's return value is stored as the cell's value and is never called
// or otherwise used; an effect's cleanup is registered on its owner
// (Owner.OnCleanup) instead.
func NewEffect(rt *Runtime, compute func() any, effectType EffectType) *Cell {
	c := NewCell(KindEffect, nil, compute, nil)
	c.effectType = effectType
	c.owner = NewOwner(activeOwner)
	c.owner.cell = c
	recompute(rt, c)
	return c
}

// Read returns cell's current value, tracking it as a dependency of
// whatever computation is active, and settling it first if it's
// Stale/Pending (§4.1, §4.4). This is the read path every host-facing
// accessor (Source.Read, Derived.Read in package reactor) funnels through.
func Read(rt *Runtime, cell *Cell) any {
	if activeComputation != nil {
		LinkDep(cell, activeComputation)
	}
	Settle(rt, cell)
	return cell.Value()
}

// Peek returns cell's current value without tracking a dependency —
// the primitive Source.Update builds on (§6).
func Peek(rt *Runtime, cell *Cell) any {
	Settle(rt, cell)
	return cell.Value()
}

// Write stores v on a source cell and propagates the change (§4.3, §6).
// Writing a source cell that doesn't actually change value (per its
// Equals) is a no-op: nothing is marked Stale/Pending and nothing is
// scheduled.
func Write(rt *Runtime, cell *Cell, v any) {
	if !cell.setValue(v) {
		return
	}
	Propagate(rt, cell)
	rt.ScheduleFlush()
}

// Untrack runs fn with no active computation, so any cells it reads are not
// recorded as dependencies of whatever is currently tracking.
func Untrack(fn func()) {
	prev := activeComputation
	activeComputation = nil
	defer func() { activeComputation = prev }()
	fn()
}

// Dispose disposes cell's owner scope, if any — which, since the owner's
// cell back-reference is set on every Derived/Effect, also unlinks cell
// from everything it depends on (see detachCell). Used when a host-facing
// effect or derived cell's disposer is called.
func Dispose(cell *Cell) {
	if cell.owner != nil {
		cell.owner.Dispose()
		return
	}
	detachCell(cell)
}

// detachCell unlinks cell from every cell it currently depends on, letting
// producers that lose their last subscriber detach in turn (invariant 4).
func detachCell(cell *Cell) {
	l := cell.depsHead
	cell.depsHead = nil
	cell.depsTail = nil
	for l != nil {
		next := l.nextDep
		unlinkSubs(l.dep, l)
		detachUnobserved(l.dep)
		l = next
	}
}

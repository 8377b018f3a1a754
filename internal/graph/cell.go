package graph

// EffectType distinguishes the two effect queues the scheduler drains each
// flush (see §8.3 of SPEC_FULL.md — ported from the teacher's EffectType).
type EffectType uint8

const (
	EffectNone EffectType = iota
	EffectRender
	EffectUser
)

// Equals compares two cell values for the purposes of write/recompute
// short-circuiting. Identity (==) by default; host code may supply its own.
type Equals func(a, b any) bool

// Cell is the single record backing source cells, derived cells, and
// effects (§3 Data Model — "the graph is uniform"). Which one a Cell is
// depends only on kind and on whether compute is nil.
type Cell struct {
	kind  Kind
	state State

	// height is 0 for a cell that reads only source cells, otherwise one
	// more than the highest derived dependency it had when LinkDep made that
	// link. It drives the scheduler's bucket ordering (§4.5). It is raised
	// only when a new link is made and is never lowered.
	height int

	// value is the cell's current value, set by setValue.
	value any

	equals  Equals
	compute func() any

	// version increases every time value actually changes (not merely every
	// flush). It is exposed through Version(); the dirty check does not
	// consult it.
	version uint64

	depsHead, depsTail *Link
	subsHead, subsTail *Link

	// heapNext/heapPrev splice this cell into the scheduler's height-bucketed
	// circular list (see heap.go) while it is queued.
	heapNext, heapPrev *Cell

	effectType EffectType

	owner *Owner

	name string
}

// NewCell allocates a Cell of the given kind. Source cells pass a nil
// compute; derived cells and effects pass the function that produces their
// next value.
func NewCell(kind Kind, initial any, compute func() any, equals Equals) *Cell {
	c := &Cell{
		kind:    kind,
		value:   initial,
		compute: compute,
		equals:  equals,
	}
	if equals == nil {
		c.equals = func(a, b any) bool { return a == b }
	}
	if kind != KindSource {
		// Derived cells and effects start Stale: the first Read (or the
		// constructor's initial run, for effects) must recompute
		// unconditionally.
		c.state = StateStale
	}
	return c
}

func (c *Cell) Kind() Kind    { return c.kind }
func (c *Cell) Height() int   { return c.height }
func (c *Cell) Version() uint64 { return c.version }
func (c *Cell) Name() string  { return c.name }
func (c *Cell) SetName(n string) { c.name = n }
func (c *Cell) Owner() *Owner { return c.owner }
func (c *Cell) SetOwner(o *Owner) { c.owner = o }
func (c *Cell) EffectType() EffectType { return c.effectType }
func (c *Cell) SetEffectType(t EffectType) { c.effectType = t }

func (c *Cell) hasState(f State) bool { return c.state.has(f) }
func (c *Cell) addState(f State)      { c.state |= f }
func (c *Cell) removeState(f State)   { c.state &^= f }

// IsObserved reports whether any cell currently subscribes to c.
func (c *Cell) IsObserved() bool { return c.subsHead != nil }

// Value returns c's current value.
func (c *Cell) Value() any { return c.value }

// setValue stores v as c's new value, bumping version if it actually changed
// by c's Equals.
func (c *Cell) setValue(v any) (changed bool) {
	changed = !c.equals(c.value, v)
	c.value = v
	if changed {
		c.version++
	}
	return changed
}

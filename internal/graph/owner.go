package graph

// Owner groups the cells and cleanup callbacks created during one derived
// or effect run so they can be torn down together (ported from the
// teacher's internal/owner.go; §8.3 of SPEC_FULL.md — not named in spec.md,
// which treats lifecycle as out of scope, but every concrete scheduler
// needs a grouping unit for nested creation and disposal).
type Owner struct {
	parent *Owner

	prevSibling, nextSibling *Owner
	childrenHead             *Owner

	cleanups []func()
	catchers []func(any)

	context map[any]any

	disposed bool

	// cell is the Derived or Effect cell this owner is the private scope
	// of, if any (set by NewDerived/NewEffect) — back-reference used to
	// unlink the cell from its dependencies when the owner is disposed, so
	// a disposed effect stops being walked by future propagations rather
	// than merely being skipped when reached.
	cell *Cell
}

// NewOwner creates a child scope of parent. parent may be nil for a root
// scope (a Runtime's RootOwner, or the private scope of a cell created
// while no owner is active).
func NewOwner(parent *Owner) *Owner {
	o := &Owner{parent: parent}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

func (o *Owner) addChild(child *Owner) {
	child.nextSibling = o.childrenHead
	if o.childrenHead != nil {
		o.childrenHead.prevSibling = child
	}
	o.childrenHead = child
}

// Run executes fn with o as the active owner context — a pure scoping
// helper with no recover of its own. Panics raised by the cells fn creates
// surface later, from their own recompute (see scheduler.go), where they
// are routed to the nearest owner with a registered catcher.
func (o *Owner) Run(fn func()) {
	WithOwner(o, fn)
}

// OnCleanup registers fn to run when o is disposed or re-run, in reverse
// registration order (LIFO) — a deliberate departure from the teacher,
// whose Dispose runs cleanups forward; see runCleanups.
func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

// OnError registers fn as an error handler for panics raised by computations
// scoped under o; the nearest ancestor with at least one handler receives
// the raw panic value — not wrapped — matching what a plain recover()
// would have produced at the panic site.
func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

// reportError walks up from o looking for a registered catcher. Returns
// true if one handled it.
func (o *Owner) reportError(v any) bool {
	for cur := o; cur != nil; cur = cur.parent {
		if len(cur.catchers) == 0 {
			continue
		}
		for _, c := range cur.catchers {
			c(v)
		}
		return true
	}
	return false
}

// runCleanups runs and clears o's own cleanup callbacks, LIFO, without
// touching children. Called both before a re-run (the owner's cell is
// about to recompute and any nested scopes it created must be rebuilt) and
// from dispose, in both cases after the child scopes have been disposed.
// The teacher's own Dispose runs cleanups forward, in registration order;
// LIFO here is this module's own choice, not a port, made so a cleanup runs
// while state that an earlier-registered cleanup tears down is still live.
func (o *Owner) runCleanups() {
	for i := len(o.cleanups) - 1; i >= 0; i-- {
		o.cleanups[i]()
	}
	o.cleanups = o.cleanups[:0]
}

// DisposeChildren tears down every child scope without disposing o itself —
// what happens right before an owning cell recomputes, so state from the
// previous run (nested effects, subscriptions) doesn't leak into the new
// one.
func (o *Owner) DisposeChildren() {
	child := o.childrenHead
	o.childrenHead = nil
	for child != nil {
		next := child.nextSibling
		child.parent = nil
		child.prevSibling = nil
		child.nextSibling = nil
		child.dispose()
		child = next
	}
}

// dispose tears down o and every descendant scope: cleanups run child-first,
// then o's own, then o's cell (if any) is unlinked from its dependencies.
// Removing o from its parent's child list is left to the caller (Dispose,
// DisposeChildren).
func (o *Owner) dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.DisposeChildren()
	o.runCleanups()
	if o.cell != nil {
		detachCell(o.cell)
	}
}

// Dispose tears down o (and its descendants) and detaches it from its
// parent, if any.
func (o *Owner) Dispose() {
	if o.parent != nil {
		if o.prevSibling != nil {
			o.prevSibling.nextSibling = o.nextSibling
		} else {
			o.parent.childrenHead = o.nextSibling
		}
		if o.nextSibling != nil {
			o.nextSibling.prevSibling = o.prevSibling
		}
		o.parent = nil
	}
	o.dispose()
}

// Disposed reports whether o has already been torn down.
func (o *Owner) Disposed() bool { return o.disposed }

// Context looks up key through o and its ancestors (Context[T]'s
// provide/inject pattern, §8.3).
func (o *Owner) Context(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		if cur.context == nil {
			continue
		}
		if v, ok := cur.context[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetContext binds value to key in o's own context map, shadowing any
// ancestor binding for descendants of o.
func (o *Owner) SetContext(key, value any) {
	if o.context == nil {
		o.context = make(map[any]any)
	}
	o.context[key] = value
}

// activeOwner is the owner scope new cells and context lookups attach to.
// Like the rest of this package it is meant to be used through one Runtime
// per goroutine (see runtime.go) — it is deliberately a package variable
// rather than a Runtime field only because owner scoping nests independent
// of any single cell's recompute, mirroring teacher's package-level active
// owner pointer.
var activeOwner *Owner

// ActiveOwner returns the owner new cells should be parented to.
func ActiveOwner() *Owner { return activeOwner }

// WithOwner runs fn with o set as the active owner for its duration,
// restoring the previous one afterward — used by the reactor package to
// scope NewOwner/NewEffect/NewDerived calls without threading an owner
// parameter through every constructor.
func WithOwner(o *Owner, fn func()) {
	prev := activeOwner
	activeOwner = o
	defer func() { activeOwner = prev }()
	fn()
}

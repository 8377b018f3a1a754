package reactor

import "github.com/nodegraph/reactor/internal/graph"

// Owner groups the cells and effects created while it's the active owner
// so they can be torn down together — the lifecycle scope every Derived
// and Effect attaches to (§8.3; ported from the teacher's Owner wrapper).
type Owner struct {
	owner *graph.Owner
}

// NewOwner creates an owner scope as a child of the currently active
// owner, if any.
func NewOwner() *Owner {
	return &Owner{owner: graph.NewOwner(graph.ActiveOwner())}
}

// Run executes fn with o as the active owner: any Derived, Effect, or
// nested Owner created inside fn becomes a child of o, disposed along with
// it. Source cells have no owner and are not affected. fn's own error return is simply passed back; panics raised
// later by an effect or derived cell created under o surface separately,
// through OnError.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose tears down o and every descendant scope, running cleanups
// child-first.
func (o *Owner) Dispose() { o.owner.Dispose() }

// OnCleanup registers fn to run when the active owner's cell next
// recomputes, or the owner is disposed, whichever comes first. Must be
// called from inside a Derived/Effect compute function or an Owner.Run.
func OnCleanup(fn func()) {
	if o := graph.ActiveOwner(); o != nil {
		o.OnCleanup(fn)
	}
}

// OnDispose registers fn to run once, when o is disposed — unlike
// OnCleanup, not re-run by any owning cell's recompute, since a plain
// Owner (as opposed to an Effect's or Derived's internal scope) has no
// recompute of its own.
func (o *Owner) OnDispose(fn func()) { o.owner.OnCleanup(fn) }

// OnError registers fn as o's error handler: panics from derived cells and
// effects scoped under o (that no closer owner already catches) are
// delivered here, as the raw value passed to panic, instead of escaping.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

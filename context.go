package reactor

import "github.com/nodegraph/reactor/internal/graph"

// Context provides a value inherited by every owner scope nested under
// wherever it's Set, without needing to be threaded through Derived or
// Effect constructors explicitly (§8.3).
type Context[T any] struct {
	key     *int
	initial T
}

// NewContext creates a context carrying initial until some owner scope
// calls Set.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{key: new(int), initial: initial}
}

// Value returns the nearest Set value visible from the currently active
// owner, or the context's initial value if none was ever Set along that
// path.
func (c *Context[T]) Value() T {
	o := graph.ActiveOwner()
	if o == nil {
		return c.initial
	}
	if v, ok := o.Context(c.key); ok {
		return as[T](v)
	}
	return c.initial
}

// Set binds value to c for the currently active owner and its descendants.
// Must be called from inside an Owner.Run, Derived compute, or Effect body.
func (c *Context[T]) Set(value T) {
	if o := graph.ActiveOwner(); o != nil {
		o.SetContext(c.key, value)
	}
}

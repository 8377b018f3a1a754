package reactor

import "github.com/nodegraph/reactor/internal/graph"

// DerivedOption configures a Derived at construction.
type DerivedOption[T any] func(*derivedConfig[T])

type derivedConfig[T any] struct {
	equals graph.Equals
	name   string
}

// WithDerivedEquals overrides the default identity (==) comparison used to
// decide whether a recompute actually changed the derived cell's value
// (and so whether it's worth propagating further).
func WithDerivedEquals[T any](eq func(a, b T) bool) DerivedOption[T] {
	return func(c *derivedConfig[T]) {
		c.equals = func(a, b any) bool { return eq(as[T](a), as[T](b)) }
	}
}

// WithDerivedName attaches a label to a Derived, surfaced in error messages.
func WithDerivedName[T any](name string) DerivedOption[T] {
	return func(c *derivedConfig[T]) { c.name = name }
}

// Derived is a computed reactive cell: its value is produced by reading
// other cells, and it is pulled lazily — nothing runs until it's first
// Read (§2 "derived cells", §4.1 pull on unobserved read).
type Derived[T any] struct {
	cell *graph.Cell
}

// NewDerived creates a derived cell from compute. compute is not run until
// the first Read.
func NewDerived[T any](compute func() T, opts ...DerivedOption[T]) *Derived[T] {
	cfg := derivedConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	cell := graph.NewDerived(func() any { return compute() }, cfg.equals)
	if cfg.name != "" {
		cell.SetName(cfg.name)
	}
	return &Derived[T]{cell: cell}
}

// Read returns the current value, recomputing first if stale or
// (confirmed by a dirty check) actually affected by a changed dependency,
// and tracking it as a dependency of whatever is currently computing.
func (d *Derived[T]) Read() T {
	return as[T](graph.Read(graph.GetRuntime(), d.cell))
}

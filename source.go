package reactor

import "github.com/nodegraph/reactor/internal/graph"

// SourceOption configures a Source at construction.
type SourceOption[T any] func(*sourceConfig[T])

type sourceConfig[T any] struct {
	equals graph.Equals
	name   string
}

// WithEquals overrides the default identity (==) comparison a Source uses
// to decide whether a Write actually changed its value.
func WithEquals[T any](eq func(a, b T) bool) SourceOption[T] {
	return func(c *sourceConfig[T]) {
		c.equals = func(a, b any) bool { return eq(as[T](a), as[T](b)) }
	}
}

// WithName attaches a label to a Source, surfaced in error messages.
func WithName[T any](name string) SourceOption[T] {
	return func(c *sourceConfig[T]) { c.name = name }
}

// Source is a directly writable reactive cell — the leaves of the
// dependency graph (§2 "source cells").
type Source[T any] struct {
	cell *graph.Cell
}

// NewSource creates a source cell holding initial.
func NewSource[T any](initial T, opts ...SourceOption[T]) *Source[T] {
	cfg := sourceConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	cell := graph.NewSource(initial, cfg.equals)
	if cfg.name != "" {
		cell.SetName(cfg.name)
	}
	return &Source[T]{cell: cell}
}

// Read returns the current value, tracking it as a dependency of whatever
// derived cell or effect is currently computing.
func (s *Source[T]) Read() T {
	return as[T](graph.Read(graph.GetRuntime(), s.cell))
}

// Write stores v, propagating to every dependent whose value could now be
// affected. A no-op if v equals the current value.
func (s *Source[T]) Write(v T) {
	graph.Write(graph.GetRuntime(), s.cell, v)
}

// Update reads the current value, applies fn, and writes the result back —
// a convenience for the common read-modify-write pattern that would
// otherwise need an explicit Untrack to avoid self-subscribing.
func (s *Source[T]) Update(fn func(T) T) {
	current := as[T](graph.Peek(graph.GetRuntime(), s.cell))
	s.Write(fn(current))
}

// Package reactor is a thin, host-facing wrapper around the push-pull
// reactive value graph implemented in internal/graph. The graph itself —
// cells, the intrusive dependency links, propagation, the dirty check, and
// the scheduler — is the engine; everything in this package is ergonomics
// on top of it: generic type-safe handles, an owner tree for lifecycle
// scoping, and a context mechanism. None of it is reachable from outside
// the module except through these wrappers.
package reactor

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

package reactor

import "github.com/nodegraph/reactor/internal/graph"

// Untrack runs fn without tracking any cell it reads as a dependency of the
// currently-computing derived cell or effect, and returns fn's result.
func Untrack[T any](fn func() T) T {
	var result T
	graph.Untrack(func() { result = fn() })
	return result
}

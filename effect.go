package reactor

import "github.com/nodegraph/reactor/internal/graph"

// Effect is a disposable reactive side effect — the terminal nodes of the
// graph (§2 "effects"). Once created it runs immediately and again
// whenever any cell it read last time changes.
type Effect struct {
	cell *graph.Cell
}

// NewEffect creates and immediately runs a user effect: fn's reads are
// tracked, and fn reruns whenever one of them changes. User effects drain
// after every render effect in a flush (§4.5, §8.3).
func NewEffect(fn func()) *Effect {
	return newEffect(fn, graph.EffectUser)
}

// NewRenderEffect is identical to NewEffect except it's queued on the
// render queue, which drains before the user queue within a flush — for
// effects that should settle (e.g. updating a view) before user-facing
// effects observe the result.
func NewRenderEffect(fn func()) *Effect {
	return newEffect(fn, graph.EffectRender)
}

func newEffect(fn func(), typ graph.EffectType) *Effect {
	cell := graph.NewEffect(graph.GetRuntime(), func() any {
		fn()
		return nil
	}, typ)
	return &Effect{cell: cell}
}

// Dispose tears down the effect: its owner scope is disposed (running any
// OnCleanup callbacks registered during its runs) and it is detached from
// every cell it depends on, so it never runs again.
func (e *Effect) Dispose() {
	graph.Dispose(e.cell)
}

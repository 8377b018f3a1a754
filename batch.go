package reactor

import "github.com/nodegraph/reactor/internal/graph"

// Batch runs fn with the scheduler's flush deferred until fn returns, so
// any number of Source writes inside it produce one flush and one round of
// effect runs instead of one per write (§4.6, §9 "batch atomicity"). Each
// write still marks its dependents Stale/Pending as it happens. Batches
// nest: only the outermost Batch call triggers the flush.
func Batch(fn func()) {
	rt := graph.GetRuntime()
	rt.BatchBegin()
	defer rt.BatchEnd()
	fn()
}

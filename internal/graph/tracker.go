package graph

// StartTracking prepares sub to be re-evaluated (§4.2). The previous
// depsHead…depsTail chain is retained — LinkDep below walks it in order and
// reuses links where the new read order matches the old one — but depsTail
// is reset to nil so the first LinkDep call of this run starts the walk from
// depsHead.
func StartTracking(sub *Cell) {
	sub.depsTail = nil
	sub.removeState(StateStale | StatePending)
	sub.addState(StateRunning)
}

// LinkDep records that sub read dep during its current run. It is the hot path
// of the whole engine: the common case (same deps, same order as the prior
// run) costs one pointer comparison and no allocation.
func LinkDep(dep, sub *Cell) {
	// Same dep read twice in a row: no-op.
	if sub.depsTail != nil && sub.depsTail.dep == dep {
		return
	}

	// candidate is the next link in sub's retained chain after where we left
	// off. If it already points at dep, the prior run's link at this
	// position is still valid — just advance the tail and reuse it.
	var candidate *Link
	if sub.depsTail != nil {
		candidate = sub.depsTail.nextDep
	} else {
		candidate = sub.depsHead
	}

	if candidate != nil && candidate.dep == dep {
		sub.depsTail = candidate
		return
	}

	// Out-of-order reuse: dep may have already been read earlier this run
	// (a link for it exists somewhere in [depsHead, depsTail]), in which
	// case it must not be linked again.
	if alreadyLinkedThisRun(sub, dep) {
		return
	}

	// Genuinely new dependency at this position: allocate a link and splice
	// it into both lists.
	l := &Link{dep: dep, sub: sub}

	if sub.depsTail != nil {
		// Insert right after the current tail, ahead of whatever leftover
		// chain (from the prior run) still follows it.
		l.nextDep = sub.depsTail.nextDep
		sub.depsTail.nextDep = l
	} else {
		l.nextDep = sub.depsHead
		sub.depsHead = l
	}
	sub.depsTail = l

	linkSubs(dep, l)

	if dep.kind != KindSource && dep.height >= sub.height {
		sub.height = dep.height + 1
	}
}

// alreadyLinkedThisRun scans the portion of sub's dependency chain consumed
// so far this run ([depsHead, depsTail]) looking for an existing link to
// dep. Spec §4.2 allows either this O(n) scan or an O(1) per-run identity
// map; the scan is what the teacher's own Link implementations do and is
// fine for the dependency-set sizes a value graph realistically has.
func alreadyLinkedThisRun(sub *Cell, dep *Cell) bool {
	if sub.depsTail == nil {
		// Nothing consumed yet this run: the whole chain is the prior run's.
		return false
	}
	l := sub.depsHead
	for l != nil {
		if l.dep == dep {
			return true
		}
		if l == sub.depsTail {
			break
		}
		l = l.nextDep
	}
	return false
}

// EndTracking finalizes sub's dependency list after its run completes.
// Everything strictly after the final depsTail is a leftover from the prior
// run that was not re-read this run, and is unlinked from both lists. A
// dependency that loses its last subscriber this way is detached from its
// own producers and marked Stale (invariant 4) by detachUnobserved below,
// which EndTracking calls directly.
func EndTracking(sub *Cell) {
	var stray *Link
	if sub.depsTail != nil {
		stray = sub.depsTail.nextDep
		sub.depsTail.nextDep = nil
	} else {
		stray = sub.depsHead
		sub.depsHead = nil
	}

	for stray != nil {
		next := stray.nextDep
		dep := stray.dep

		unlinkSubs(dep, stray)
		detachUnobserved(dep)

		stray = next
	}

	sub.removeState(StateRunning)
}

// detachUnobserved implements invariant 4: a cell with no subscribers left
// and a non-empty deps list is no longer observed by anyone. The engine
// eagerly detaches it from its own producers (rather than waiting for its
// next write) and marks it Stale so the next observer forces a fresh
// recompute instead of reading a value that silently stopped being
// maintained.
func detachUnobserved(dep *Cell) {
	if dep.subsHead != nil || dep.depsHead == nil {
		return
	}
	if dep.kind == KindSource {
		return
	}

	drain := dep.depsHead
	dep.depsHead = nil
	dep.depsTail = nil
	dep.addState(StateStale)

	for drain != nil {
		next := drain.nextDep
		producer := drain.dep

		unlinkSubs(producer, drain)
		detachUnobserved(producer)

		drain = next
	}
}

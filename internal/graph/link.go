package graph

// Link is a single directed edge from a dependency (dep) to a subscriber
// (sub). It splices into two lists at once: dep's subscriber list
// (doubly-linked, so an arbitrary link can be removed in O(1)) and sub's
// dependency list (singly-linked via nextDep only — prevDep is never needed
// because tracking always rewrites the list head-to-tail on each run, per
// the tracking protocol below).
type Link struct {
	dep *Cell
	sub *Cell

	nextDep *Link

	prevSub *Link
	nextSub *Link
}

// linkSubs appends l to dep's subscriber list.
func linkSubs(dep *Cell, l *Link) {
	l.prevSub = dep.subsTail
	l.nextSub = nil

	if dep.subsTail != nil {
		dep.subsTail.nextSub = l
	} else {
		dep.subsHead = l
	}
	dep.subsTail = l
}

// unlinkSubs splices l out of dep's subscriber list.
func unlinkSubs(dep *Cell, l *Link) {
	if l.prevSub != nil {
		l.prevSub.nextSub = l.nextSub
	} else {
		dep.subsHead = l.nextSub
	}

	if l.nextSub != nil {
		l.nextSub.prevSub = l.prevSub
	} else {
		dep.subsTail = l.prevSub
	}

	l.prevSub = nil
	l.nextSub = nil
}

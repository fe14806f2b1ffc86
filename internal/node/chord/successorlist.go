package chord

import (
	"context"

	"chorddht/internal/ring"
)

// SuccessorList is the fault-tolerance structure of spec.md §4.3: the R
// nearest live successors in ring order. Grounded on the teacher's
// RoutingTable.successorList, generalized to the `update(other)` rewrite
// contract spec.md §4.3 spells out explicitly (the teacher approximates
// this by writing individual slots; here the list is rewritten wholesale
// so the "[other.owner, other.successors[0..R-1]], truncated to R" rule is
// the only mutation path).
type SuccessorList struct {
	size int
	list []ring.Node
}

// NewSuccessorList builds a list of length 0..size, seeded the way spec.md
// §3 Lifecycles describes: {self, firstSucc} (or {self} alone for a solo
// cluster, when firstSucc equals self).
func NewSuccessorList(size int, self, firstSucc ring.Node) *SuccessorList {
	sl := &SuccessorList{size: size}
	if firstSucc.Addr == self.Addr {
		sl.list = []ring.Node{self}
	} else {
		sl.list = []ring.Node{self, firstSucc}
	}
	sl.truncate()
	return sl
}

func (sl *SuccessorList) truncate() {
	if len(sl.list) > sl.size {
		sl.list = sl.list[:sl.size]
	}
}

// First returns the immediate successor, or false if the list is empty.
func (sl *SuccessorList) First() (ring.Node, bool) {
	if len(sl.list) == 0 {
		return ring.Node{}, false
	}
	return sl.list[0], true
}

// SetFirst overwrites the immediate successor (slot 0), used by stabilize
// when it adopts a closer successor per spec.md §4.6 step 2, and by
// fix-fingers when cursor==1 refreshes successors[0] (spec.md §4.6).
func (sl *SuccessorList) SetFirst(n ring.Node) {
	if len(sl.list) == 0 {
		sl.list = []ring.Node{n}
		return
	}
	sl.list[0] = n
}

// Snapshot returns a defensive copy of the list, length <= R.
func (sl *SuccessorList) Snapshot() []ring.Node {
	out := make([]ring.Node, len(sl.list))
	copy(out, sl.list)
	return out
}

// Update rewrites the list as [owner, succs[0..size-1]], truncated to size,
// per spec.md §4.3's `update(other)` contract: owner is the node whose
// successor list this is a reply from (successors[0]), succs is the list
// it reported owning.
func (sl *SuccessorList) Update(owner ring.Node, succs []ring.Node) {
	newList := make([]ring.Node, 0, sl.size)
	newList = append(newList, owner)
	newList = append(newList, succs...)
	if len(newList) > sl.size {
		newList = newList[:sl.size]
	}
	sl.list = newList
}

// Reset collapses the list to just self, the fallback spec.md §4.6's
// successor-list check describes when every successor is unreachable.
func (sl *SuccessorList) Reset(self ring.Node) {
	sl.list = []ring.Node{self}
}

// FirstLive returns the first successor for which probe succeeds, per
// spec.md §4.3/§4.8 (used by shutdown handoff to pick the handoff target).
func FirstLive(ctx context.Context, succs []ring.Node, probe func(context.Context, ring.Node) bool) (ring.Node, bool) {
	for _, s := range succs {
		if probe(ctx, s) {
			return s, true
		}
	}
	return ring.Node{}, false
}

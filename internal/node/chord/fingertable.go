package chord

import (
	"fmt"

	"chorddht/internal/ring"
)

// FingerTable is the routing shortcut structure of spec.md §4.2: M entries,
// entry i's start fixed at construction time and its address populated
// lazily by fix-fingers. Grounded on the teacher's RoutingTable.fingers
// slice, split out into its own lockable sub-resource per §4.4/§5 (the
// teacher guards fingers with the same mutex as predecessor/successor
// list/store; this node splits each into its own lock instead).
type FingerTable struct {
	space   ring.Space
	self    ring.ID
	starts  []ring.ID
	entries []string // peer address, "" means unset
}

// NewFingerTable precomputes the M finger starts for self, leaving every
// address unset.
func NewFingerTable(sp ring.Space, self ring.ID) *FingerTable {
	ft := &FingerTable{
		space:   sp,
		self:    self,
		starts:  make([]ring.ID, sp.Bits),
		entries: make([]string, sp.Bits),
	}
	for i := 0; i < sp.Bits; i++ {
		ft.starts[i] = sp.FingerStart(self, i)
	}
	return ft
}

// Len is the number of finger entries (== space.Bits).
func (ft *FingerTable) Len() int { return len(ft.entries) }

// Start returns the precomputed start position of entry i.
func (ft *FingerTable) Start(i int) ring.ID { return ft.starts[i] }

// Update overwrites entry i's address. Finger entries are never grown, only
// ever overwritten (spec.md §3 Lifecycles).
func (ft *FingerTable) Update(i int, addr string) {
	if i >= 0 && i < len(ft.entries) {
		ft.entries[i] = addr
	}
}

// Get returns entry i's address and whether it is set.
func (ft *FingerTable) Get(i int) (string, bool) {
	if i < 0 || i >= len(ft.entries) {
		return "", false
	}
	addr := ft.entries[i]
	return addr, addr != ""
}

// SetAll points every finger at addr, used by the solo-cluster bootstrap
// (spec.md §4.7 "every finger address = self").
func (ft *FingerTable) SetAll(addr string) {
	for i := range ft.entries {
		ft.entries[i] = addr
	}
}

// ClosestPrecedingFinger scans fingers from the highest index down and
// returns the first whose position lies in the open arc (self, target)
// (spec.md §4.5.2). Returns "", false when no finger qualifies, and the
// caller falls back to self.
func (ft *FingerTable) ClosestPrecedingFinger(target ring.ID, idOf func(addr string) ring.ID) (string, bool) {
	for i := len(ft.entries) - 1; i >= 0; i-- {
		addr := ft.entries[i]
		if addr == "" {
			continue
		}
		pos := idOf(addr)
		if ring.Between(pos, ft.self, target, true, true) {
			return addr, true
		}
	}
	return "", false
}

// Snapshot returns "index:address" strings for every set entry, used by
// getNodeSummary debug reflection.
func (ft *FingerTable) Snapshot() []string {
	out := make([]string, 0, len(ft.entries))
	for i, addr := range ft.entries {
		if addr != "" {
			out = append(out, fmt.Sprintf("%d:%s", i, addr))
		}
	}
	return out
}

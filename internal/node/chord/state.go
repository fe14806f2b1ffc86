// Package chord implements the ring management subsystem of spec.md §4: the
// finger table, successor list, predecessor, node state, peer RPC handlers,
// maintenance loops, join protocol and shutdown handoff. It is grounded on
// the teacher's internal/node/chord package (RoutingTable + Node +
// stabilization.go), generalized per spec.md §4.4/§5 to four independently
// lockable pieces of node state instead of the teacher's one coarse mutex.
package chord

import (
	"sync"

	"chorddht/internal/logger"
	"chorddht/internal/node/storage"
	"chorddht/internal/ring"
)

// State bundles the node's mutable routing state. Per spec.md §4.4/§5 the
// four mutable pieces (finger table, predecessor, successor list, store)
// are independently lockable, and no operation holds two of these locks at
// once: every method below takes and releases exactly one lock, the way
// stabilize/fixFinger/notify in maintenance.go and notify.go read one piece,
// release it, do I/O, then reacquire to commit.
//
// This is the one deliberate departure from the teacher's RoutingTable,
// which guards fingers/predecessor/successorList with a single
// sync.RWMutex: spec.md §5 explicitly forbids that coarser grain because it
// would serialise stabilize against concurrent client traffic.
type State struct {
	self  ring.Node
	space ring.Space
	lgr   logger.Logger

	fingerMu sync.RWMutex
	fingers  *FingerTable
	cursor   int // fixFingerCursor, guarded by fingerMu

	predMu sync.RWMutex
	pred   *ring.Node // nil means absent

	succMu sync.RWMutex
	succs  *SuccessorList

	Store *storage.Storage // already independently lock-protected (see storage.Storage)
}

// NewState constructs node state for a solo-cluster bootstrap: predecessor
// absent, successor list {self}, every finger pointed at self (spec.md
// §4.7 "Solo start"). succListSize is R, the configured successor-list
// length (spec.md §3, reference default 3).
func NewState(self ring.Node, sp ring.Space, succListSize int, store *storage.Storage, lgr logger.Logger) *State {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	s := &State{
		self:  self,
		space: sp,
		lgr:   lgr,
		Store: store,
	}
	s.fingers = NewFingerTable(sp, self.ID)
	s.fingers.SetAll(self.Addr)
	s.succs = NewSuccessorList(succListSize, self, self)
	return s
}

func (s *State) Self() ring.Node   { return s.self }
func (s *State) Space() ring.Space { return s.space }

// --- finger table ---

func (s *State) FingerLen() int {
	s.fingerMu.RLock()
	defer s.fingerMu.RUnlock()
	return s.fingers.Len()
}

func (s *State) FingerStart(i int) ring.ID {
	s.fingerMu.RLock()
	defer s.fingerMu.RUnlock()
	return s.fingers.Start(i)
}

func (s *State) UpdateFinger(i int, addr string) {
	s.fingerMu.Lock()
	defer s.fingerMu.Unlock()
	s.fingers.Update(i, addr)
}

func (s *State) Finger(i int) (string, bool) {
	s.fingerMu.RLock()
	defer s.fingerMu.RUnlock()
	return s.fingers.Get(i)
}

func (s *State) SetAllFingers(addr string) {
	s.fingerMu.Lock()
	defer s.fingerMu.Unlock()
	s.fingers.SetAll(addr)
}

// ClosestPrecedingFinger scans the finger table for the closest node
// preceding target, per spec.md §4.5.2. idOf resolves a peer address to its
// ring position (the caller, lookup.go, supplies hash(addr)).
func (s *State) ClosestPrecedingFinger(target ring.ID, idOf func(string) ring.ID) (string, bool) {
	s.fingerMu.RLock()
	defer s.fingerMu.RUnlock()
	return s.fingers.ClosestPrecedingFinger(target, idOf)
}

func (s *State) FingerSnapshot() []string {
	s.fingerMu.RLock()
	defer s.fingerMu.RUnlock()
	return s.fingers.Snapshot()
}

// NextFixFingerCursor advances and returns the fix-fingers cursor
// (spec.md §4.6), wrapping modulo the finger table length.
func (s *State) NextFixFingerCursor() int {
	s.fingerMu.Lock()
	defer s.fingerMu.Unlock()
	s.cursor = (s.cursor + 1) % s.fingers.Len()
	return s.cursor
}

// --- predecessor ---

func (s *State) Predecessor() (ring.Node, bool) {
	s.predMu.RLock()
	defer s.predMu.RUnlock()
	if s.pred == nil {
		return ring.Node{}, false
	}
	return *s.pred, true
}

func (s *State) SetPredecessor(n *ring.Node) {
	s.predMu.Lock()
	defer s.predMu.Unlock()
	s.pred = n
}

// --- successor list ---

func (s *State) FirstSuccessor() (ring.Node, bool) {
	s.succMu.RLock()
	defer s.succMu.RUnlock()
	return s.succs.First()
}

func (s *State) SetFirstSuccessor(n ring.Node) {
	s.succMu.Lock()
	defer s.succMu.Unlock()
	s.succs.SetFirst(n)
}

func (s *State) SuccessorListSnapshot() []ring.Node {
	s.succMu.RLock()
	defer s.succMu.RUnlock()
	return s.succs.Snapshot()
}

func (s *State) UpdateSuccessorList(owner ring.Node, succs []ring.Node) {
	s.succMu.Lock()
	defer s.succMu.Unlock()
	s.succs.Update(owner, succs)
}

func (s *State) ResetSuccessorList() {
	s.succMu.Lock()
	defer s.succMu.Unlock()
	s.succs.Reset(s.self)
}

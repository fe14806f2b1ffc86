package chord

import (
	"chorddht/internal/logger"
	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

// Node is the ring management subsystem (spec.md's "core"): node state plus
// the operations in §4.5-§4.8 built on top of it. Grounded on the teacher's
// chord.Node, which bundles a *RoutingTable, a *client.Pool and a
// *storage.Storage the same way.
type Node struct {
	lgr *namedLogger
	cp  *client.Pool
	st  *State

	powDifficulty int
}

// namedLogger lets Node carry a possibly-nil logger.Logger without every
// call site nil-checking; New always fills it.
type namedLogger struct{ logger.Logger }

// New builds a Node around already-constructed state and a client pool.
// Mirrors the teacher's chord.New(space, clientpool, storage, opts...),
// adapted to take a *State (this implementation's four-lock state bundle)
// instead of a *RoutingTable plus a bare *storage.Storage.
func New(st *State, cp *client.Pool, opts ...Option) *Node {
	n := &Node{
		lgr: &namedLogger{logger.NopLogger{}},
		cp:  cp,
		st:  st,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Self() ring.Node   { return n.st.Self() }
func (n *Node) Space() ring.Space { return n.st.Space() }

// idOf hashes a peer address to its ring position. Every RPC reply in this
// wire protocol carries only an address (spec.md §6.2 "addresses as
// strings"); callers that need the position recompute it locally rather
// than trusting a peer-supplied identifier.
func (n *Node) idOf(addr string) ring.ID {
	return n.st.Space().Hash([]byte(addr))
}

// CreateNewDHT initializes a solo-cluster ring: predecessor absent,
// successor list {self}, every finger pointed at self (spec.md §4.7 "Solo
// start (J absent)").
func (n *Node) CreateNewDHT() {
	self := n.st.Self()
	n.st.SetFirstSuccessor(self)
	n.st.SetPredecessor(nil)
	n.st.SetAllFingers(self.Addr)
	n.lgr.Info("createNewDHT: initialized solo ring", logger.FNode("self", &self))
}

// Stop releases outbound connections. Callers invoke shutdown handoff
// (ShutdownHandoff, in handoff.go) before calling Stop.
func (n *Node) Stop() {
	if n.cp != nil {
		_ = n.cp.Close()
	}
}

// Predecessor exposes the current predecessor for debug reflection and for
// cmd/validate-cluster.
func (n *Node) Predecessor() (ring.Node, bool) { return n.st.Predecessor() }

// SuccessorList exposes the current successor list for debug reflection.
func (n *Node) SuccessorList() []ring.Node { return n.st.SuccessorListSnapshot() }

// FingerSnapshot exposes set finger entries as "index:address" pairs, for
// debug reflection.
func (n *Node) FingerSnapshot() []string { return n.st.FingerSnapshot() }

// StoreLen reports the local store's entry count, for debug reflection.
func (n *Node) StoreLen() int { return n.st.Store.Len() }

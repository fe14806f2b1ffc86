package chord

import (
	"context"
	"fmt"

	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

// owns reports whether this node owns k, per spec.md §3's ownership rule:
// a live node with position p and predecessor q owns exactly (q, p]; absent
// predecessor means it provisionally owns the whole ring.
func (n *Node) owns(k ring.ID) bool {
	self := n.st.Self()
	pred, ok := n.st.Predecessor()
	if !ok {
		return true
	}
	return ring.Between(k, pred.ID, self.ID, true, false)
}

// HandleGet implements the get(k) peer RPC (spec.md §4.5.4): local-only,
// refusing with ErrOutOfRange when the key isn't owned here. Used by
// chordrpc's Get handler, which the caller reaches only after a
// findSuccessor lookup claimed this node as owner.
func (n *Node) HandleGet(k ring.ID) ([]byte, error) {
	if !n.owns(k) {
		return nil, client.ErrOutOfRange
	}
	res, err := n.st.Store.Get(k)
	if err != nil {
		return nil, client.ErrNotFound
	}
	return res.Value, nil
}

// HandlePut implements the put(k, v, ttl, replication) peer RPC (spec.md
// §4.5.4). res.Expiry, set by the Put RPC handler from a non-zero ttl, is
// honoured by the store's lazy expiry; replication is not used.
func (n *Node) HandlePut(res ring.Resource) error {
	if !n.owns(res.Key) {
		return client.ErrOutOfRange
	}
	n.st.Store.Put(res)
	return nil
}

// Put is the client-originated entry point (spec.md §4.9's C9 executor
// calls this, or it's reached directly when acting as the entry node):
// resolve the owner via findSuccessor and either store locally or forward,
// mirroring the teacher's Node.Put.
func (n *Node) Put(ctx context.Context, res ring.Resource) error {
	owner, err := n.FindSuccessor(ctx, res.Key)
	if err != nil {
		return fmt.Errorf("chord: put: %w", err)
	}
	if owner.Addr == n.st.Self().Addr {
		return n.HandlePut(res)
	}
	cli, err := n.cp.GetFromPool(owner.Addr)
	if err != nil {
		return fmt.Errorf("chord: put: dial owner %s: %w", owner.Addr, err)
	}
	return client.Put(ctx, cli, []byte(res.Key), res.Value, 0, 0)
}

// Get is the client-originated entry point mirroring Put.
func (n *Node) Get(ctx context.Context, key ring.ID) ([]byte, error) {
	owner, err := n.FindSuccessor(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("chord: get: %w", err)
	}
	if owner.Addr == n.st.Self().Addr {
		return n.HandleGet(key)
	}
	cli, err := n.cp.GetFromPool(owner.Addr)
	if err != nil {
		return nil, fmt.Errorf("chord: get: dial owner %s: %w", owner.Addr, err)
	}
	return client.Get(ctx, cli, []byte(key))
}

// Health answers the health() peer RPC: the handler can be reached at all,
// which is the only liveness signal spec.md §4.5 requires.
func (n *Node) Health() bool { return true }

// AllOwned returns every resource currently in the local store, used by
// shutdown handoff (spec.md §4.8) where "owned by this node" and "present
// in the local store" coincide by the ownership invariant.
func (n *Node) AllOwned() []ring.Resource { return n.st.Store.All() }

// IngestHandoff inserts received pairs into the local store, implementing
// the handoff(stream of kv) peer RPC (spec.md §4.5 table). Returns the
// count ingested, for the ack reply.
func (n *Node) IngestHandoff(pairs []ring.Resource) int32 {
	for _, res := range pairs {
		n.st.Store.Put(res)
	}
	return int32(len(pairs))
}

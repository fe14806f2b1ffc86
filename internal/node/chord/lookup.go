package chord

import (
	"context"
	"fmt"

	"chorddht/internal/logger"
	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

// maxLookupHops is the hop limit findSuccessor checks before routing. The
// count is local to one node: FindSuccessor always starts it at 0, and the
// forwarded FindSuccessorRequest carries no hop count, so a lookup cycling
// across nodes is not stopped by this limit; only the caller's context
// deadline ends it.
const maxLookupHops = 64

// FindSuccessor resolves the owner of target, per spec.md §4.5.1: if
// target lies in (selfPos, succPos] answer the immediate successor;
// otherwise forward to the closest preceding finger and recurse remotely.
// This is both the local lookup path (used by Put/Get, and so by the client
// executor, and by fix-fingers) and the implementation behind the
// findSuccessor peer RPC.
func (n *Node) FindSuccessor(ctx context.Context, target ring.ID) (ring.Node, error) {
	return n.findSuccessor(ctx, target, 0)
}

func (n *Node) findSuccessor(ctx context.Context, target ring.ID, hops int) (ring.Node, error) {
	if hops >= maxLookupHops {
		return ring.Node{}, fmt.Errorf("chord: findSuccessor(%s): exceeded %d hops", target.ToHex(), maxLookupHops)
	}

	self := n.st.Self()
	sp := n.st.Space()

	succ, ok := n.st.FirstSuccessor()
	if !ok {
		return ring.Node{}, fmt.Errorf("chord: findSuccessor: no successor known")
	}

	lowerBound := sp.AddUint64(self.ID, 1)
	if ring.Between(target, lowerBound, succ.ID, false, false) {
		return succ, nil
	}

	closest, ok := n.closestPrecedingFinger(target)
	if !ok || closest.Addr == self.Addr {
		// No finger strictly between self and target: forward to the
		// immediate successor instead of looping on ourselves.
		closest = succ
	}

	cli, err := n.cp.GetFromPool(closest.Addr)
	if err != nil {
		return n.findSuccessorFallback(ctx, target, hops, err)
	}

	remote, err := client.FindSuccessor(ctx, cli, sp, target, n.idOf)
	if err != nil {
		n.cp.Invalidate(closest.Addr)
		return n.findSuccessorFallback(ctx, target, hops, err)
	}
	return remote, nil
}

// findSuccessorFallback implements spec.md §4.5.1's "if C is unreachable,
// fall back: retry through this node's predecessor", surfacing UNAVAILABLE
// semantics to the caller when the predecessor route also fails.
func (n *Node) findSuccessorFallback(ctx context.Context, target ring.ID, hops int, cause error) (ring.Node, error) {
	pred, ok := n.st.Predecessor()
	if !ok {
		return ring.Node{}, fmt.Errorf("chord: findSuccessor: unavailable, closest preceding node unreachable: %w", cause)
	}

	cli, err := n.cp.GetFromPool(pred.Addr)
	if err != nil {
		return ring.Node{}, fmt.Errorf("chord: findSuccessor: unavailable, predecessor fallback unreachable: %w", err)
	}
	remote, err := client.FindSuccessor(ctx, cli, n.st.Space(), target, n.idOf)
	if err != nil {
		n.cp.Invalidate(pred.Addr)
		return ring.Node{}, fmt.Errorf("chord: findSuccessor: unavailable via predecessor fallback: %w", err)
	}
	n.lgr.Debug("findSuccessor: recovered via predecessor fallback",
		logger.F("target", target.ToHex()), logger.F("hops", hops))
	return remote, nil
}

// ClosestPrecedingFinger implements the findClosestPrecedingFinger peer RPC
// (spec.md §4.5.2): scan fingers highest-to-lowest, return the first whose
// position lies in (selfPos, target); fall back to self.
func (n *Node) ClosestPrecedingFinger(target ring.ID) ring.Node {
	closest, ok := n.closestPrecedingFinger(target)
	if !ok {
		return n.st.Self()
	}
	return closest
}

func (n *Node) closestPrecedingFinger(target ring.ID) (ring.Node, bool) {
	addr, ok := n.st.ClosestPrecedingFinger(target, n.idOf)
	if !ok {
		return ring.Node{}, false
	}
	return ring.Node{ID: n.idOf(addr), Addr: addr}, true
}

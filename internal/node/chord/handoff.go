package chord

import (
	"context"

	"chorddht/internal/logger"
	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

// ShutdownHandoff implements C8 (spec.md §4.8): on termination, stream
// every kv pair owned by this node to the first reachable successor.
// Grounded on the teacher's signal-handling shutdown path in
// cmd/node/main.go, which this implementation generalizes with an actual
// data-transfer step the teacher's Node.Leave (a no-op TODO) never
// performs.
func (n *Node) ShutdownHandoff(ctx context.Context) {
	succs := n.st.SuccessorListSnapshot()

	live, found := n.firstLiveSuccessor(ctx, succs)
	pairs := n.AllOwned()

	if !found {
		if len(pairs) > 0 {
			n.lgr.Error("shutdownHandoff: no reachable successor, data lost",
				logger.F("count", len(pairs)))
		}
		return
	}
	if len(pairs) == 0 {
		return
	}

	cli, err := n.cp.GetFromPool(live.Addr)
	if err != nil {
		n.lgr.Error("shutdownHandoff: dial successor failed, data lost",
			logger.F("successor", live.Addr), logger.F("count", len(pairs)), logger.F("err", err))
		return
	}

	ack, err := client.Handoff(ctx, cli, pairs)
	if err != nil {
		n.lgr.Error("shutdownHandoff: stream failed", logger.F("err", err))
		return
	}
	n.lgr.Info("shutdownHandoff: transferred store to successor",
		logger.F("successor", live.Addr), logger.F("count", ack))
}

// firstLiveSuccessor probes each successor in order with health(), per
// spec.md §4.3's firstLive(probe) and §4.8's handoff-target selection. It
// skips self (a solo or near-solo ring lists itself in its own successor
// list), and delegates the scan to the package-level FirstLive helper used
// by the successor list abstraction.
func (n *Node) firstLiveSuccessor(ctx context.Context, succs []ring.Node) (ring.Node, bool) {
	self := n.st.Self()
	candidates := make([]ring.Node, 0, len(succs))
	for _, s := range succs {
		if s.Addr != self.Addr {
			candidates = append(candidates, s)
		}
	}
	return FirstLive(ctx, candidates, func(ctx context.Context, s ring.Node) bool {
		cli, err := n.cp.GetFromPool(s.Addr)
		if err != nil {
			return false
		}
		probeCtx, cancel := context.WithTimeout(ctx, n.cp.FailureTimeout())
		defer cancel()
		if err := client.Health(probeCtx, cli); err != nil {
			n.cp.Invalidate(s.Addr)
			return false
		}
		return true
	})
}

package chord

import (
	"context"
	"fmt"

	"chorddht/internal/logger"
	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

// Join bootstraps this node's state from an existing peer, per spec.md
// §4.7 "Joining (J present)". peers is tried in order (as the teacher's
// Join iterates bootstrap candidates); the first that answers
// findSuccessor successfully wins.
func (n *Node) Join(peers []string) error {
	if len(peers) == 0 {
		return fmt.Errorf("chord: join: no bootstrap peers provided")
	}
	self := n.st.Self()

	if n.powDifficulty > 0 {
		nonce := solvePoW(self.Addr, n.powDifficulty)
		n.lgr.Debug("join: solved proof-of-work admission puzzle",
			logger.F("difficulty", n.powDifficulty), logger.F("nonce", nonce))
	}

	var succ ring.Node
	var lastErr error
	found := false

	for _, addr := range peers {
		if addr == self.Addr {
			continue
		}
		cli, conn, err := n.cp.DialEphemeral(addr)
		if err != nil {
			lastErr = fmt.Errorf("join: dial bootstrap %s: %w", addr, err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), n.cp.FailureTimeout())
		succ, lastErr = client.FindSuccessor(ctx, cli, n.st.Space(), self.ID, n.idOf)
		cancel()
		_ = conn.Close()

		if lastErr == nil {
			if succ.ID.Equal(self.ID) {
				return fmt.Errorf("chord: join: a node with the same id already exists on the ring")
			}
			n.lgr.Info("join: candidate successor found",
				logger.F("bootstrap", addr), logger.FNode("successor", &succ))
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("chord: join: all bootstrap attempts failed: %w", lastErr)
	}

	// Connect to S and pull its successor list (spec.md §4.7).
	ctx, cancel := context.WithTimeout(context.Background(), n.cp.FailureTimeout())
	cli, err := n.cp.GetFromPool(succ.Addr)
	if err != nil {
		cancel()
		return fmt.Errorf("chord: join: dial successor %s: %w", succ.Addr, err)
	}
	theirList, err := client.GetSuccessorList(ctx, cli, n.idOf)
	cancel()
	if err != nil {
		return fmt.Errorf("chord: join: getSuccessorList on %s: %w", succ.Addr, err)
	}

	n.st.UpdateSuccessorList(succ, theirList)
	n.st.UpdateFinger(0, succ.Addr)
	// Predecessor remains absent; an upcoming notify (triggered by this
	// node's first stabilize call) will set it. No "update-others" phase.

	n.lgr.Info("join: completed", logger.FNode("self", &self), logger.FNode("successor", &succ))
	return nil
}

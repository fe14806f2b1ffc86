package chord

import (
	"chorddht/internal/logger"
	"chorddht/internal/ring"
)

// Notify implements the notify(a) peer RPC (spec.md §4.5.3): a neighbour
// believes it is this node's predecessor and announces itself. Returns the
// kv pairs to hand off to the caller, already removed from the local
// store, or nil if the predecessor wasn't updated.
//
// Grounded on the teacher's Node.Notify, generalized to compute and return
// the handoff arc the teacher's version never implements (the teacher's
// Notify only updates the routing table; this spec explicitly couples
// notify to data handoff).
func (n *Node) Notify(caller ring.Node) []ring.Resource {
	self := n.st.Self()
	pred, hadPred := n.st.Predecessor()

	// oldAnchor is the left bound of the arc this node owned before the
	// update: the previous predecessor's position, or self when the
	// predecessor was absent (provisionally owning the whole ring).
	oldAnchor := self.ID
	if hadPred {
		oldAnchor = pred.ID
	}

	updated := false
	if !hadPred {
		n.st.SetPredecessor(&caller)
		updated = true
		n.lgr.Info("notify: set predecessor (was absent)", logger.FNode("new_pred", &caller))
	} else {
		lowerBound := n.st.Space().AddUint64(pred.ID, 1)
		if ring.Between(caller.ID, lowerBound, self.ID, false, true) {
			old := pred
			n.st.SetPredecessor(&caller)
			updated = true
			n.lgr.Info("notify: updated predecessor",
				logger.FNode("old_pred", &old), logger.FNode("new_pred", &caller))
		}
	}

	if !updated {
		return nil
	}

	return n.st.Store.TakeRange(n.st.Space(), oldAnchor, caller.ID, false)
}

package chord

import "chorddht/internal/logger"

// Option configures a Node at construction time, following the teacher's
// functional-option pattern (chord.WithRoutingTable/WithLogger in the
// teacher's cmd/node/main.go).
type Option func(*Node)

// WithLogger attaches a logger to the node and every subsystem it drives.
func WithLogger(lgr logger.Logger) Option {
	return func(n *Node) {
		if lgr != nil {
			n.lgr = &namedLogger{lgr}
		}
	}
}

// WithPoWDifficulty enables the optional proof-of-work join admission gate
// of spec.md §6.3/§9. difficulty 0 disables it.
func WithPoWDifficulty(difficulty int) Option {
	return func(n *Node) { n.powDifficulty = difficulty }
}

package bootstrap

import "context"

// StaticBootstrap returns a fixed, config-supplied peer list, per spec.md
// §6.3's `join_address` key. Register/Deregister are no-ops: there's no
// external registry to update.
type StaticBootstrap struct {
	peers []string
}

// NewStaticBootstrap wraps a fixed peer list. An empty list means "start a
// fresh ring".
func NewStaticBootstrap(peers []string) *StaticBootstrap {
	return &StaticBootstrap{peers: peers}
}

func (b *StaticBootstrap) Discover(ctx context.Context) ([]string, error) {
	return b.peers, nil
}

func (b *StaticBootstrap) Register(ctx context.Context, selfAddr string) error { return nil }

func (b *StaticBootstrap) Deregister(ctx context.Context, selfAddr string) error { return nil }

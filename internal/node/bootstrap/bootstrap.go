// Package bootstrap resolves the peer(s) a node should join, and announces
// this node to whatever discovery mechanism the deployment uses. Grounded
// on the teacher's cmd/node/main.go call-site ("register.Discover" /
// "register.Register" / "register.Deregister", selected by
// cfg.DHT.Bootstrap.Mode), reconstructed here since the teacher's
// internal/bootstrap package itself wasn't in the retrieved pack.
package bootstrap

import "context"

// Bootstrap resolves join targets and (optionally) announces this node's
// membership to an external registry.
type Bootstrap interface {
	// Discover returns the addresses of existing ring members to attempt a
	// join against. An empty slice (no error) means "start a fresh ring",
	// per spec.md §4.7's "Solo start (J absent)".
	Discover(ctx context.Context) ([]string, error)

	// Register announces selfAddr as a ring member, for future Discover
	// calls from other nodes. A no-op is a valid implementation.
	Register(ctx context.Context, selfAddr string) error

	// Deregister removes selfAddr from the registry on clean shutdown.
	Deregister(ctx context.Context, selfAddr string) error
}

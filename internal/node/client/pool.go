// Package client is the outbound gRPC connection layer: a reusable dial
// pool plus typed wrappers around every peer RPC in spec.md §4.5. Grounded
// on the teacher's internal/node/client package, whose shape is visible
// through its call sites in chord/node.go and chord/stabilization.go
// (client2.New, cp.GetFromPool, cp.DialEphemeral, cp.FailureTimeout,
// client2.FindSuccessorStart/GetPredecessor/GetSuccessorList/Notify/Ping/
// StoreRemote/RetrieveRemote/RemoveRemote).
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chorddht/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	dhtv1 "chorddht/internal/api/dht/v1"
)

// Option configures a Pool, following the teacher's functional-option
// pattern (chord.Option, simple.Option).
type Option func(*Pool)

// WithLogger attaches a logger to the pool.
func WithLogger(lgr logger.Logger) Option {
	return func(p *Pool) { p.lgr = lgr }
}

// WithDialRetries overrides the bounded-retry connect policy of spec.md §5
// ("15 retries × 100ms" reference).
func WithDialRetries(retries int, backoff time.Duration) Option {
	return func(p *Pool) {
		p.dialRetries = retries
		p.dialBackoff = backoff
	}
}

// Pool is a reusable dial pool keyed by peer address. Connections are
// opened on demand and cached; spec.md §5 permits but doesn't require
// reuse, and the teacher reuses one for the lifetime of the process.
type Pool struct {
	selfAddr string

	failureTimeout time.Duration
	dialRetries    int
	dialBackoff    time.Duration

	lgr logger.Logger

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// New builds a Pool. failureTimeout bounds every RPC outcall per spec.md
// §5's cancellation requirement.
func New(selfAddr string, failureTimeout time.Duration, opts ...Option) *Pool {
	p := &Pool{
		selfAddr:       selfAddr,
		failureTimeout: failureTimeout,
		dialRetries:    15,
		dialBackoff:    100 * time.Millisecond,
		lgr:            logger.NopLogger{},
		conns:          make(map[string]*grpc.ClientConn),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FailureTimeout is the per-RPC deadline callers should wrap their
// context.WithTimeout calls in.
func (p *Pool) FailureTimeout() time.Duration { return p.failureTimeout }

func dialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(dhtv1.CallContentSubtype())),
	}
}

// dial connects to addr with the bounded retry/backoff policy of spec.md
// §5: a short fixed backoff, a bounded retry count, never blocking forever.
func (p *Pool) dial(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	var lastErr error
	for attempt := 0; attempt <= p.dialRetries; attempt++ {
		conn, err := grpc.NewClient(addr, dialOptions()...)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt < p.dialRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.dialBackoff):
			}
		}
	}
	return nil, fmt.Errorf("client: dial %s failed after %d retries: %w", addr, p.dialRetries, lastErr)
}

// GetFromPool returns a cached client for addr, dialing it first if needed.
func (p *Pool) GetFromPool(addr string) (dhtv1.ChordClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[addr]; ok {
		return dhtv1.NewChordClient(conn), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.failureTimeout)
	defer cancel()
	conn, err := p.dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	p.conns[addr] = conn
	return dhtv1.NewChordClient(conn), nil
}

// DialEphemeral opens a one-off connection not added to the pool, used for
// the bootstrap peer during join (spec.md §4.7), which this node may never
// talk to again. Caller is responsible for closing the returned conn.
func (p *Pool) DialEphemeral(addr string) (dhtv1.ChordClient, *grpc.ClientConn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.failureTimeout)
	defer cancel()
	conn, err := p.dial(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	return dhtv1.NewChordClient(conn), conn, nil
}

// Invalidate drops addr from the pool, forcing the next GetFromPool to
// redial. Used when an RPC against a pooled connection fails outright.
func (p *Pool) Invalidate(addr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok := p.conns[addr]; ok {
		_ = conn.Close()
		delete(p.conns, addr)
	}
}

// Close tears down every pooled connection, called from Node.Stop.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for addr, conn := range p.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.conns, addr)
	}
	return firstErr
}

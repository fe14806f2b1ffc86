package executor

import (
	"context"
	"errors"
	"testing"

	"chorddht/internal/logger"
	"chorddht/internal/node/chord"
	"chorddht/internal/node/client"
	"chorddht/internal/node/storage"
	"chorddht/internal/ring"
)

// newSoloNode builds a one-node ring (no predecessor, successor == self) so
// Put/Get resolve and apply locally without needing a live client pool —
// mirrors chord's own newTestNode helper, reconstructed here since it's
// unexported in package chord.
func newSoloNode(t *testing.T, addr string) (*chord.Node, ring.Space) {
	t.Helper()
	sp, err := ring.NewSpace(8)
	if err != nil {
		t.Fatalf("ring.NewSpace: %v", err)
	}
	self := ring.Node{ID: sp.Hash([]byte(addr)), Addr: addr}
	st := chord.NewState(self, sp, 3, storage.New(logger.NopLogger{}), logger.NopLogger{})
	return chord.New(st, nil), sp
}

func TestExecutorPutGetRoundTrip(t *testing.T) {
	node, sp := newSoloNode(t, "solo")
	exec := New(node)

	key := sp.AddUint64(node.Self().ID, 5)
	if err := exec.Put(context.Background(), key, []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	value, err := exec.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != "payload" {
		t.Errorf("Get = %q, want payload", value)
	}
}

func TestExecutorGetMissingKeyReturnsNotFoundImmediately(t *testing.T) {
	node, sp := newSoloNode(t, "solo")
	exec := New(node, WithRetries(2, 0))

	key := sp.AddUint64(node.Self().ID, 9)
	_, err := exec.Get(context.Background(), key)
	if !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound (no retry budget spent on a definitive miss)", err)
	}
}

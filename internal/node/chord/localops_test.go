package chord

import (
	"testing"

	"chorddht/internal/node/client"
	"chorddht/internal/ring"
)

func newTestNode(t *testing.T, bits int, addr string) *Node {
	t.Helper()
	st := newTestState(t, bits, 3, addr)
	return New(st, nil)
}

func TestOwnsWithNoPredecessorOwnsWholeRing(t *testing.T) {
	n := newTestNode(t, 8, "solo")
	sp := n.Space()

	for _, off := range []uint64{0, 1, 100, 255} {
		k := sp.AddUint64(sp.Zero(), off)
		if !n.owns(k) {
			t.Errorf("owns(%s) = false, want true (no predecessor => owns whole ring)", k.ToHex())
		}
	}
}

func TestOwnsRespectsPredecessorArc(t *testing.T) {
	n := newTestNode(t, 8, "node")
	sp := n.Space()

	self := n.Self()
	pred := ring.Node{ID: sp.AddUint64(self.ID, 256-50), Addr: "pred"} // 50 behind self
	n.st.SetPredecessor(&pred)

	inside := sp.AddUint64(pred.ID, 10)
	if !n.owns(inside) {
		t.Errorf("owns(%s) = false, want true (inside (pred, self])", inside.ToHex())
	}

	// pred itself is excluded (left-open).
	if n.owns(pred.ID) {
		t.Errorf("owns(pred.ID) = true, want false (left-open boundary excludes predecessor)")
	}

	// self is included (right-closed).
	if !n.owns(self.ID) {
		t.Errorf("owns(self.ID) = false, want true (right-closed boundary includes self)")
	}
}

func TestHandlePutGetRoundTrip(t *testing.T) {
	n := newTestNode(t, 8, "solo")
	sp := n.Space()
	key := sp.AddUint64(sp.Zero(), 5)

	if err := n.HandlePut(ring.Resource{Key: key, Value: []byte("hello")}); err != nil {
		t.Fatalf("HandlePut: %v", err)
	}
	value, err := n.HandleGet(key)
	if err != nil {
		t.Fatalf("HandleGet: %v", err)
	}
	if string(value) != "hello" {
		t.Errorf("HandleGet = %q, want hello", value)
	}
}

func TestHandleGetMissingKey(t *testing.T) {
	n := newTestNode(t, 8, "solo")
	sp := n.Space()

	_, err := n.HandleGet(sp.AddUint64(sp.Zero(), 1))
	if err != client.ErrNotFound {
		t.Errorf("HandleGet on empty store = %v, want ErrNotFound", err)
	}
}

func TestHandlePutOutOfRange(t *testing.T) {
	n := newTestNode(t, 8, "node")
	sp := n.Space()
	self := n.Self()

	pred := ring.Node{ID: sp.AddUint64(self.ID, 256-10), Addr: "pred"}
	n.st.SetPredecessor(&pred)

	outside := sp.AddUint64(self.ID, 50) // well past self, outside (pred, self]
	err := n.HandlePut(ring.Resource{Key: outside, Value: []byte("x")})
	if err != client.ErrOutOfRange {
		t.Errorf("HandlePut(out-of-range) = %v, want ErrOutOfRange", err)
	}
}

func TestIngestHandoffAndAllOwned(t *testing.T) {
	n := newTestNode(t, 8, "solo")
	sp := n.Space()

	pairs := []ring.Resource{
		{Key: sp.AddUint64(sp.Zero(), 1), Value: []byte("a")},
		{Key: sp.AddUint64(sp.Zero(), 2), Value: []byte("b")},
	}
	count := n.IngestHandoff(pairs)
	if count != 2 {
		t.Fatalf("IngestHandoff = %d, want 2", count)
	}
	if len(n.AllOwned()) != 2 {
		t.Errorf("AllOwned() len = %d, want 2", len(n.AllOwned()))
	}
}

func TestHealthAlwaysTrue(t *testing.T) {
	n := newTestNode(t, 8, "solo")
	if !n.Health() {
		t.Error("Health() = false, want true")
	}
}

package chord

import (
	"testing"

	"chorddht/internal/logger"
	"chorddht/internal/node/storage"
	"chorddht/internal/ring"
)

func newTestState(t *testing.T, bits, succListSize int, addr string) *State {
	t.Helper()
	sp := mustTestSpace(t, bits)
	self := ring.Node{ID: sp.Hash([]byte(addr)), Addr: addr}
	return NewState(self, sp, succListSize, storage.New(logger.NopLogger{}), logger.NopLogger{})
}

func TestNewStateSoloBootstrap(t *testing.T) {
	st := newTestState(t, 8, 3, "node-a")

	if _, ok := st.Predecessor(); ok {
		t.Error("fresh state should have no predecessor")
	}
	succs := st.SuccessorListSnapshot()
	if len(succs) != 1 || succs[0].Addr != "node-a" {
		t.Fatalf("SuccessorListSnapshot() = %v, want [node-a]", succs)
	}
	for i := 0; i < st.FingerLen(); i++ {
		addr, ok := st.Finger(i)
		if !ok || addr != "node-a" {
			t.Fatalf("Finger(%d) = (%q, %v), want (node-a, true)", i, addr, ok)
		}
	}
}

func TestStatePredecessorRoundTrip(t *testing.T) {
	st := newTestState(t, 8, 3, "node-a")

	pred := ring.Node{Addr: "node-b"}
	st.SetPredecessor(&pred)

	got, ok := st.Predecessor()
	if !ok || got.Addr != "node-b" {
		t.Fatalf("Predecessor() = (%v, %v), want (node-b, true)", got, ok)
	}

	st.SetPredecessor(nil)
	if _, ok := st.Predecessor(); ok {
		t.Error("Predecessor() should report absent after SetPredecessor(nil)")
	}
}

func TestStateNextFixFingerCursorWraps(t *testing.T) {
	st := newTestState(t, 8, 3, "node-a")

	seen := make(map[int]bool)
	for i := 0; i < st.FingerLen()*2; i++ {
		c := st.NextFixFingerCursor()
		if c < 0 || c >= st.FingerLen() {
			t.Fatalf("NextFixFingerCursor() = %d, out of range [0, %d)", c, st.FingerLen())
		}
		seen[c] = true
	}
	if len(seen) != st.FingerLen() {
		t.Errorf("cursor visited %d distinct values, want %d", len(seen), st.FingerLen())
	}
}

func TestStateUpdateFingerAndSnapshot(t *testing.T) {
	st := newTestState(t, 8, 3, "node-a")

	st.UpdateFinger(3, "node-c")
	addr, ok := st.Finger(3)
	if !ok || addr != "node-c" {
		t.Fatalf("Finger(3) = (%q, %v), want (node-c, true)", addr, ok)
	}
}

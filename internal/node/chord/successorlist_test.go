package chord

import (
	"context"
	"testing"

	"chorddht/internal/ring"
)

func TestNewSuccessorListSolo(t *testing.T) {
	self := ring.Node{Addr: "self"}
	sl := NewSuccessorList(3, self, self)

	snap := sl.Snapshot()
	if len(snap) != 1 || snap[0].Addr != "self" {
		t.Fatalf("Snapshot() = %v, want [self]", snap)
	}
}

func TestNewSuccessorListJoined(t *testing.T) {
	self := ring.Node{Addr: "self"}
	succ := ring.Node{Addr: "succ"}
	sl := NewSuccessorList(3, self, succ)

	snap := sl.Snapshot()
	if len(snap) != 2 || snap[0].Addr != "self" || snap[1].Addr != "succ" {
		t.Fatalf("Snapshot() = %v, want [self succ]", snap)
	}
}

func TestSuccessorListSetFirst(t *testing.T) {
	self := ring.Node{Addr: "self"}
	sl := NewSuccessorList(3, self, self)

	sl.SetFirst(ring.Node{Addr: "new-succ"})
	first, ok := sl.First()
	if !ok || first.Addr != "new-succ" {
		t.Fatalf("First() = (%v, %v), want (new-succ, true)", first, ok)
	}
}

func TestSuccessorListUpdateTruncatesToSize(t *testing.T) {
	self := ring.Node{Addr: "self"}
	sl := NewSuccessorList(2, self, self)

	sl.Update(ring.Node{Addr: "a"}, []ring.Node{{Addr: "b"}, {Addr: "c"}})
	snap := sl.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot() len = %d, want 2 (truncated): %v", len(snap), snap)
	}
	if snap[0].Addr != "a" || snap[1].Addr != "b" {
		t.Errorf("Snapshot() = %v, want [a b]", snap)
	}
}

func TestSuccessorListReset(t *testing.T) {
	self := ring.Node{Addr: "self"}
	sl := NewSuccessorList(3, self, ring.Node{Addr: "succ"})

	sl.Reset(self)
	snap := sl.Snapshot()
	if len(snap) != 1 || snap[0].Addr != "self" {
		t.Fatalf("Snapshot() after Reset = %v, want [self]", snap)
	}
}

func TestFirstLiveReturnsFirstReachable(t *testing.T) {
	succs := []ring.Node{{Addr: "dead"}, {Addr: "alive"}, {Addr: "also-alive"}}
	probe := func(_ context.Context, n ring.Node) bool { return n.Addr != "dead" }

	got, ok := FirstLive(context.Background(), succs, probe)
	if !ok || got.Addr != "alive" {
		t.Fatalf("FirstLive = (%v, %v), want (alive, true)", got, ok)
	}
}

func TestFirstLiveAllUnreachable(t *testing.T) {
	succs := []ring.Node{{Addr: "a"}, {Addr: "b"}}
	probe := func(_ context.Context, _ ring.Node) bool { return false }

	_, ok := FirstLive(context.Background(), succs, probe)
	if ok {
		t.Fatal("FirstLive should report false when every successor is unreachable")
	}
}

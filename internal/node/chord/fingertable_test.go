package chord

import (
	"testing"

	"chorddht/internal/ring"
)

func mustTestSpace(t *testing.T, bits int) ring.Space {
	t.Helper()
	sp, err := ring.NewSpace(bits)
	if err != nil {
		t.Fatalf("ring.NewSpace(%d): %v", bits, err)
	}
	return sp
}

func TestFingerTableStartsPrecomputed(t *testing.T) {
	sp := mustTestSpace(t, 8)
	self := sp.AddUint64(sp.Zero(), 10)
	ft := NewFingerTable(sp, self)

	if ft.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", ft.Len())
	}
	for i := 0; i < 8; i++ {
		want := sp.FingerStart(self, i)
		if !ft.Start(i).Equal(want) {
			t.Errorf("Start(%d) = %s, want %s", i, ft.Start(i).ToHex(), want.ToHex())
		}
	}
}

func TestFingerTableUpdateAndGet(t *testing.T) {
	sp := mustTestSpace(t, 8)
	ft := NewFingerTable(sp, sp.Zero())

	if _, ok := ft.Get(0); ok {
		t.Fatal("Get(0) on fresh table should be unset")
	}
	ft.Update(0, "127.0.0.1:1000")
	addr, ok := ft.Get(0)
	if !ok || addr != "127.0.0.1:1000" {
		t.Fatalf("Get(0) = (%q, %v), want (127.0.0.1:1000, true)", addr, ok)
	}

	// out-of-range indices are ignored, not panics.
	ft.Update(-1, "x")
	ft.Update(100, "x")
}

func TestFingerTableSetAll(t *testing.T) {
	sp := mustTestSpace(t, 8)
	ft := NewFingerTable(sp, sp.Zero())
	ft.SetAll("self-addr")

	for i := 0; i < ft.Len(); i++ {
		addr, ok := ft.Get(i)
		if !ok || addr != "self-addr" {
			t.Fatalf("Get(%d) = (%q, %v), want (self-addr, true)", i, addr, ok)
		}
	}
}

func TestFingerTableSnapshotOnlySetEntries(t *testing.T) {
	sp := mustTestSpace(t, 8)
	ft := NewFingerTable(sp, sp.Zero())
	ft.Update(2, "a")
	ft.Update(5, "b")

	snap := ft.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot() len = %d, want 2: %v", len(snap), snap)
	}
	if snap[0] != "2:a" || snap[1] != "5:b" {
		t.Errorf("Snapshot() = %v, want [2:a 5:b]", snap)
	}
}

func TestFingerTableClosestPrecedingFinger(t *testing.T) {
	sp := mustTestSpace(t, 8)
	self := sp.AddUint64(sp.Zero(), 10)
	ft := NewFingerTable(sp, self)

	idOf := map[string]ring.ID{
		"near": sp.AddUint64(sp.Zero(), 20),
		"far":  sp.AddUint64(sp.Zero(), 200),
	}
	resolve := func(addr string) ring.ID { return idOf[addr] }

	ft.Update(0, "near")
	ft.Update(7, "far")

	target := sp.AddUint64(sp.Zero(), 30)
	addr, ok := ft.ClosestPrecedingFinger(target, resolve)
	if !ok || addr != "near" {
		t.Fatalf("ClosestPrecedingFinger = (%q, %v), want (near, true)", addr, ok)
	}
}

func TestFingerTableClosestPrecedingFingerNoneQualifies(t *testing.T) {
	sp := mustTestSpace(t, 8)
	self := sp.AddUint64(sp.Zero(), 10)
	ft := NewFingerTable(sp, self)

	_, ok := ft.ClosestPrecedingFinger(sp.AddUint64(sp.Zero(), 11), func(string) ring.ID { return sp.Zero() })
	if ok {
		t.Fatal("ClosestPrecedingFinger should report no match on an empty table")
	}
}

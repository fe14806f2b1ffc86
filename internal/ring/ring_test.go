package ring

import "testing"

func mustSpace(t *testing.T, bits int) Space {
	t.Helper()
	sp, err := NewSpace(bits)
	if err != nil {
		t.Fatalf("NewSpace(%d): %v", bits, err)
	}
	return sp
}

func TestBetweenLinear(t *testing.T) {
	sp := mustSpace(t, 8)
	a := sp.AddUint64(sp.Zero(), 10)
	b := sp.AddUint64(sp.Zero(), 20)

	cases := []struct {
		name               string
		x                  uint64
		leftOpen, rightOpen bool
		want               bool
	}{
		{"strictly inside, (a,b)", 15, true, true, true},
		{"equals a, left-open excludes", 10, true, true, false},
		{"equals a, left-closed includes", 10, false, true, true},
		{"equals b, right-open excludes", 20, true, true, false},
		{"equals b, right-closed includes", 20, true, false, true},
		{"outside below", 5, true, true, false},
		{"outside above", 25, true, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := sp.AddUint64(sp.Zero(), c.x)
			got := Between(x, a, b, c.leftOpen, c.rightOpen)
			if got != c.want {
				t.Errorf("Between(%d, 10, 20, lo=%v, ro=%v) = %v, want %v", c.x, c.leftOpen, c.rightOpen, got, c.want)
			}
		})
	}
}

func TestBetweenWrapAround(t *testing.T) {
	sp := mustSpace(t, 8)
	a := sp.AddUint64(sp.Zero(), 250)
	b := sp.AddUint64(sp.Zero(), 10)

	wantIn := []uint64{252, 0, 5, 10}
	for _, v := range wantIn {
		x := sp.AddUint64(sp.Zero(), v)
		if !Between(x, a, b, true, false) {
			t.Errorf("expected %d to be within wrap-around (250, 10]", v)
		}
	}

	wantOut := []uint64{100, 200, 249}
	for _, v := range wantOut {
		x := sp.AddUint64(sp.Zero(), v)
		if Between(x, a, b, true, false) {
			t.Errorf("expected %d to be outside wrap-around (250, 10]", v)
		}
	}
}

func TestBetweenDegenerate(t *testing.T) {
	sp := mustSpace(t, 8)
	a := sp.AddUint64(sp.Zero(), 42)

	// (a, a] left-open degenerate: empty, not the whole ring.
	for _, v := range []uint64{0, 41, 42, 43, 200} {
		x := sp.AddUint64(sp.Zero(), v)
		if Between(x, a, a, true, false) {
			t.Errorf("(a,a] should be empty; %d wrongly included", v)
		}
	}

	// [a, a] left-closed degenerate: only a itself.
	for _, v := range []uint64{0, 41, 42, 43} {
		x := sp.AddUint64(sp.Zero(), v)
		want := v == 42
		if got := Between(x, a, a, false, false); got != want {
			t.Errorf("[a,a] degenerate: Between(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestFingerStartWraps(t *testing.T) {
	sp := mustSpace(t, 8)
	self := sp.AddUint64(sp.Zero(), 250)

	// 250 + 2^3 = 258 mod 256 = 2
	got := sp.FingerStart(self, 3)
	want := sp.AddUint64(sp.Zero(), 2)
	if !got.Equal(want) {
		t.Errorf("FingerStart(250, 3) = %s, want %s", got.ToHex(), want.ToHex())
	}
}

func TestHashDeterministicAndMasked(t *testing.T) {
	sp := mustSpace(t, 5) // not byte-aligned: extra bits in the first byte must be zero
	id := sp.Hash([]byte("127.0.0.1:5601"))
	if err := sp.IsValid(id); err != nil {
		t.Fatalf("hash produced invalid id: %v", err)
	}
	id2 := sp.Hash([]byte("127.0.0.1:5601"))
	if !id.Equal(id2) {
		t.Errorf("Hash is not deterministic: %s != %s", id.ToHex(), id2.ToHex())
	}
}

func TestFromHexRoundTrip(t *testing.T) {
	sp := mustSpace(t, 8)
	id, err := sp.FromHex("0xfa")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if id.ToHex() != "0xfa" {
		t.Errorf("round trip mismatch: %s", id.ToHex())
	}

	if _, err := sp.FromHex(""); err == nil {
		t.Error("expected error for empty hex string")
	}
}

package bootstrap

import (
	"context"
	"testing"
)

func TestStaticBootstrapDiscoverReturnsFixedList(t *testing.T) {
	b := NewStaticBootstrap([]string{"127.0.0.1:5501", "127.0.0.1:5502"})
	peers, err := b.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(peers) != 2 || peers[0] != "127.0.0.1:5501" || peers[1] != "127.0.0.1:5502" {
		t.Errorf("Discover() = %v, want [127.0.0.1:5501 127.0.0.1:5502]", peers)
	}
}

func TestStaticBootstrapEmptyMeansFreshRing(t *testing.T) {
	b := NewStaticBootstrap(nil)
	peers, err := b.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("Discover() = %v, want empty", peers)
	}
}

func TestStaticBootstrapRegisterDeregisterAreNoops(t *testing.T) {
	b := NewStaticBootstrap([]string{"a"})
	if err := b.Register(context.Background(), "self"); err != nil {
		t.Errorf("Register: %v, want nil", err)
	}
	if err := b.Deregister(context.Background(), "self"); err != nil {
		t.Errorf("Deregister: %v, want nil", err)
	}
}

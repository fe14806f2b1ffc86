// Command validate-cluster checks a running cluster's finger-table and
// successor/predecessor invariants (spec.md §8 scenario 3: "every node's
// finger table and successor list are eventually consistent with the
// ring"). Grounded on original_source/src/bin/validate_cluster.rs, which
// performs the same two checks (predecessor agreement around the ring,
// finger-entry correctness) over the Rust implementation's gRPC
// GetNodeSummary call; this adapts that check to dhtv1.ChordClient and
// ring.Space instead of the original's u128 Key type.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	dhtv1 "chorddht/internal/api/dht/v1"
	"chorddht/internal/ring"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	addrsFlag := flag.String("addrs", "", "comma-separated p2p addresses of every node in the cluster")
	idBits := flag.Int("id-bits", 128, "ring identifier width in bits, must match the cluster's id_bits")
	timeout := flag.Duration("timeout", 5*time.Second, "per-RPC timeout")
	flag.Parse()

	if *addrsFlag == "" {
		fmt.Fprintln(os.Stderr, "validate-cluster: -addrs is required")
		os.Exit(1)
	}
	addrs := strings.Split(*addrsFlag, ",")

	if err := run(addrs, *idBits, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "validate-cluster: FAIL:", err)
		os.Exit(1)
	}
	fmt.Println("looks good!")
}

type nodeSummary struct {
	id      ring.ID
	summary *dhtv1.NodeSummary
}

func run(addrs []string, idBits int, timeout time.Duration) error {
	space, err := ring.NewSpace(idBits)
	if err != nil {
		return fmt.Errorf("init identifier space: %w", err)
	}

	summaries := make([]nodeSummary, 0, len(addrs))
	for _, addr := range addrs {
		summary, err := fetchSummary(addr, timeout)
		if err != nil {
			return fmt.Errorf("fetch summary from %s: %w", addr, err)
		}
		id, err := space.FromHex(summary.SelfID)
		if err != nil {
			return fmt.Errorf("parse id from %s: %w", addr, err)
		}
		summaries = append(summaries, nodeSummary{id: id, summary: summary})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].id.Cmp(summaries[j].id) < 0 })

	ids := make([]ring.ID, len(summaries))
	for i, s := range summaries {
		ids[i] = s.id
	}

	if err := checkPredecessors(space, summaries); err != nil {
		return err
	}
	return checkFingers(space, summaries, ids)
}

// checkPredecessors verifies node i's successor (the next node clockwise)
// names node i as its predecessor, per spec.md §4.2's ring invariant.
func checkPredecessors(space ring.Space, summaries []nodeSummary) error {
	n := len(summaries)
	for i := 0; i < n; i++ {
		next := summaries[(i+1)%n]
		if !next.summary.HasPredecessor {
			return fmt.Errorf("node %s has no predecessor, expected %s",
				next.summary.SelfAddress, summaries[i].summary.SelfAddress)
		}
		predID := space.Hash([]byte(next.summary.PredecessorAddress))
		if !predID.Equal(summaries[i].id) {
			return fmt.Errorf("node %s has wrong predecessor: %s (want %s)",
				next.summary.SelfAddress, next.summary.PredecessorAddress, summaries[i].summary.SelfAddress)
		}
	}
	return nil
}

// checkFingers verifies every finger entry points at the node actually
// responsible for that finger's start position (spec.md §4.1).
func checkFingers(space ring.Space, summaries []nodeSummary, ids []ring.ID) error {
	for _, s := range summaries {
		for _, entry := range s.summary.Fingers {
			idx, addr, err := parseFingerEntry(entry)
			if err != nil {
				return fmt.Errorf("node %s: %w", s.summary.SelfAddress, err)
			}
			fingerStart := space.FingerStart(s.id, idx)
			want := responsibleNode(fingerStart, ids)
			got := space.Hash([]byte(addr))
			if !got.Equal(want) {
				return fmt.Errorf("node %s: finger[%d] (start %s) points to %s (id %s), but %s is responsible",
					s.summary.SelfAddress, idx, fingerStart.ToHex(), addr, got.ToHex(), want.ToHex())
			}
		}
	}
	return nil
}

func parseFingerEntry(entry string) (int, string, error) {
	parts := strings.SplitN(entry, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("malformed finger entry %q", entry)
	}
	var idx int
	if _, err := fmt.Sscanf(parts[0], "%d", &idx); err != nil {
		return 0, "", fmt.Errorf("malformed finger index in %q: %w", entry, err)
	}
	return idx, parts[1], nil
}

// responsibleNode returns the first id >= key walking clockwise through the
// (ascending-sorted) ring, wrapping to the smallest id if none qualifies —
// the successor rule of spec.md §4.1.
func responsibleNode(key ring.ID, sortedIDs []ring.ID) ring.ID {
	for _, id := range sortedIDs {
		if id.Cmp(key) >= 0 {
			return id
		}
	}
	return sortedIDs[0]
}

func fetchSummary(addr string, timeout time.Duration) (*dhtv1.NodeSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(dhtv1.CallContentSubtype())),
	)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	cli := dhtv1.NewChordClient(conn)
	return cli.GetNodeSummary(ctx, &dhtv1.Empty{})
}

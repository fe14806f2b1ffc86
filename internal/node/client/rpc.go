package client

import (
	"context"
	"fmt"
	"io"

	dhtv1 "chorddht/internal/api/dht/v1"
	"chorddht/internal/ring"
)

// FindSuccessor calls the peer RPC of the same name (spec.md §4.5.1) and
// resolves the owning node's identifier via idOf (hash(address)), since the
// wire reply only carries an address.
func FindSuccessor(ctx context.Context, cli dhtv1.ChordClient, sp ring.Space, target ring.ID, idOf func(string) ring.ID) (ring.Node, error) {
	resp, err := cli.FindSuccessor(ctx, &dhtv1.FindSuccessorRequest{TargetID: []byte(target)})
	if err != nil {
		return ring.Node{}, fmt.Errorf("client: findSuccessor: %w", err)
	}
	return ring.Node{ID: idOf(resp.Address), Addr: resp.Address}, nil
}

// GetPredecessor calls getPredecessor(); ok is false when the peer reports
// no predecessor (spec.md §4.5 "optional address").
func GetPredecessor(ctx context.Context, cli dhtv1.ChordClient, idOf func(string) ring.ID) (ring.Node, bool, error) {
	resp, err := cli.GetPredecessor(ctx, &dhtv1.Empty{})
	if err != nil {
		return ring.Node{}, false, fmt.Errorf("client: getPredecessor: %w", err)
	}
	if !resp.Present {
		return ring.Node{}, false, nil
	}
	return ring.Node{ID: idOf(resp.Address), Addr: resp.Address}, true, nil
}

// GetSuccessorList calls getSuccessorList().
func GetSuccessorList(ctx context.Context, cli dhtv1.ChordClient, idOf func(string) ring.ID) ([]ring.Node, error) {
	resp, err := cli.GetSuccessorList(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, fmt.Errorf("client: getSuccessorList: %w", err)
	}
	out := make([]ring.Node, len(resp.Addresses))
	for i, addr := range resp.Addresses {
		out[i] = ring.Node{ID: idOf(addr), Addr: addr}
	}
	return out, nil
}

// ClosestPrecedingFinger calls findClosestPrecedingFinger(k) (spec.md
// §4.5.2).
func ClosestPrecedingFinger(ctx context.Context, cli dhtv1.ChordClient, target ring.ID, idOf func(string) ring.ID) (ring.Node, error) {
	resp, err := cli.FindClosestPrecedingFinger(ctx, &dhtv1.ClosestPrecedingFingerRequest{TargetID: []byte(target)})
	if err != nil {
		return ring.Node{}, fmt.Errorf("client: findClosestPrecedingFinger: %w", err)
	}
	return ring.Node{ID: idOf(resp.Address), Addr: resp.Address}, nil
}

// Notify calls notify(selfAddr) and drains any streamed handoff pairs into
// ingest, per spec.md §4.5.3's notify-triggers-handoff coupling. Returns the
// number of pairs ingested.
func Notify(ctx context.Context, cli dhtv1.ChordClient, selfAddr string, ingest func(ring.Resource)) (int, error) {
	stream, err := cli.Notify(ctx, &dhtv1.NotifyRequest{Address: selfAddr})
	if err != nil {
		return 0, fmt.Errorf("client: notify: %w", err)
	}
	count := 0
	for {
		pair, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("client: notify stream: %w", err)
		}
		ingest(pairToResource(pair))
		count++
	}
	return count, nil
}

// Health calls health(), a liveness probe used by check-predecessor
// (spec.md §4.6) and by shutdown handoff's successor probe.
func Health(ctx context.Context, cli dhtv1.ChordClient) error {
	resp, err := cli.Health(ctx, &dhtv1.Empty{})
	if err != nil {
		return fmt.Errorf("client: health: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("client: health: peer reports not ok")
	}
	return nil
}

// Get calls get(k).
func Get(ctx context.Context, cli dhtv1.ChordClient, key []byte) ([]byte, error) {
	resp, err := cli.Get(ctx, &dhtv1.GetRequest{Key: key})
	if err != nil {
		return nil, fmt.Errorf("client: get: %w", err)
	}
	switch resp.Status {
	case dhtv1.StatusOK:
		return resp.Value, nil
	case dhtv1.StatusNotFound:
		return nil, ErrNotFound
	case dhtv1.StatusOutOfRange:
		return nil, ErrOutOfRange
	default:
		return nil, fmt.Errorf("client: get: unexpected status %s", resp.Status)
	}
}

// Put calls put(k, v, ttl, replication).
func Put(ctx context.Context, cli dhtv1.ChordClient, key, value []byte, ttlSeconds, replication uint32) error {
	resp, err := cli.Put(ctx, &dhtv1.PutRequest{Key: key, Value: value, TTLSeconds: ttlSeconds, Replication: replication})
	if err != nil {
		return fmt.Errorf("client: put: %w", err)
	}
	switch resp.Status {
	case dhtv1.StatusOK:
		return nil
	case dhtv1.StatusOutOfRange:
		return ErrOutOfRange
	default:
		return fmt.Errorf("client: put: unexpected status %s", resp.Status)
	}
}

// GetNodeSummary calls getNodeSummary().
func GetNodeSummary(ctx context.Context, cli dhtv1.ChordClient) (*dhtv1.NodeSummary, error) {
	resp, err := cli.GetNodeSummary(ctx, &dhtv1.Empty{})
	if err != nil {
		return nil, fmt.Errorf("client: getNodeSummary: %w", err)
	}
	return resp, nil
}

// GetKVStoreData calls getKvStoreData(), draining the debug reflection
// stream into out.
func GetKVStoreData(ctx context.Context, cli dhtv1.ChordClient, out func(ring.Resource)) error {
	stream, err := cli.GetKVStoreData(ctx, &dhtv1.Empty{})
	if err != nil {
		return fmt.Errorf("client: getKvStoreData: %w", err)
	}
	for {
		pair, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("client: getKvStoreData stream: %w", err)
		}
		out(pairToResource(pair))
	}
}

// Handoff streams pairs to the peer via handoff(stream of kv), used by
// shutdown handoff (spec.md §4.8); notify-triggered handoff arrives on the
// Notify reply stream instead. Returns the ack count the peer reports
// ingesting.
func Handoff(ctx context.Context, cli dhtv1.ChordClient, pairs []ring.Resource) (int32, error) {
	stream, err := cli.Handoff(ctx)
	if err != nil {
		return 0, fmt.Errorf("client: handoff: %w", err)
	}
	for _, res := range pairs {
		if err := stream.Send(resourceToPair(res)); err != nil {
			return 0, fmt.Errorf("client: handoff send: %w", err)
		}
	}
	ack, err := stream.CloseAndRecv()
	if err != nil {
		return 0, fmt.Errorf("client: handoff close: %w", err)
	}
	return ack.Count, nil
}

func pairToResource(p *dhtv1.HandoffPair) ring.Resource {
	res := ring.Resource{Key: ring.ID(p.Key), Value: p.Value}
	if p.ExpiresAtUnix != 0 {
		res.Expiry = unixToTime(p.ExpiresAtUnix)
	}
	return res
}

func resourceToPair(res ring.Resource) *dhtv1.HandoffPair {
	pair := &dhtv1.HandoffPair{Key: []byte(res.Key), Value: res.Value}
	if !res.Expiry.IsZero() {
		pair.ExpiresAtUnix = timeToUnix(res.Expiry)
	}
	return pair
}

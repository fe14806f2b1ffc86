// Package chordrpc implements the peer-facing gRPC surface (spec.md §4.5's
// RPC table), wrapping a *chord.Node so the wire layer stays a thin
// translation from dhtv1 messages to Node method calls and back. Grounded
// on the teacher's internal/node/server pattern of a small adapter struct
// embedding UnimplementedXServer and delegating to the domain node.
package chordrpc

import (
	"context"
	"errors"
	"io"

	dhtv1 "chorddht/internal/api/dht/v1"
	"chorddht/internal/logger"
	"chorddht/internal/node/chord"
	"chorddht/internal/node/client"
	"chorddht/internal/ring"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server adapts a *chord.Node to dhtv1.ChordServer.
type Server struct {
	dhtv1.UnimplementedChordServer
	node *chord.Node
	lgr  logger.Logger
}

// New builds a chordrpc.Server around an already-joined (or solo-created)
// node.
func New(node *chord.Node, lgr logger.Logger) *Server {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Server{node: node, lgr: lgr}
}

func (s *Server) FindSuccessor(ctx context.Context, req *dhtv1.FindSuccessorRequest) (*dhtv1.FindSuccessorResponse, error) {
	succ, err := s.node.FindSuccessor(ctx, ring.ID(req.TargetID))
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "findSuccessor: %v", err)
	}
	return &dhtv1.FindSuccessorResponse{Address: succ.Addr}, nil
}

func (s *Server) GetPredecessor(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.GetPredecessorResponse, error) {
	pred, ok := s.node.Predecessor()
	if !ok {
		return &dhtv1.GetPredecessorResponse{Present: false}, nil
	}
	return &dhtv1.GetPredecessorResponse{Present: true, Address: pred.Addr}, nil
}

func (s *Server) GetSuccessorList(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.GetSuccessorListResponse, error) {
	succs := s.node.SuccessorList()
	addrs := make([]string, 0, len(succs))
	for _, n := range succs {
		addrs = append(addrs, n.Addr)
	}
	return &dhtv1.GetSuccessorListResponse{Addresses: addrs}, nil
}

func (s *Server) FindClosestPrecedingFinger(ctx context.Context, req *dhtv1.ClosestPrecedingFingerRequest) (*dhtv1.ClosestPrecedingFingerResponse, error) {
	cpf := s.node.ClosestPrecedingFinger(ring.ID(req.TargetID))
	return &dhtv1.ClosestPrecedingFingerResponse{Address: cpf.Addr}, nil
}

// Notify implements the notify(a) peer RPC as a server-streaming call: the
// reply stream carries whatever kv pairs the caller's arrival displaced
// from this node's ownership (spec.md §4.5.3), possibly empty.
func (s *Server) Notify(req *dhtv1.NotifyRequest, stream dhtv1.Chord_NotifyServer) error {
	caller := ring.Node{ID: s.node.Space().Hash([]byte(req.Address)), Addr: req.Address}
	handoff := s.node.Notify(caller)
	for _, res := range handoff {
		pair := &dhtv1.HandoffPair{Key: res.Key, Value: res.Value}
		if !res.Expiry.IsZero() {
			pair.ExpiresAtUnix = res.Expiry.Unix()
		}
		if err := stream.Send(pair); err != nil {
			return err
		}
	}
	return nil
}

// FixFingersTick and StabilizeTick let any gRPC caller force an
// out-of-band maintenance tick, per spec.md
// §4.5's RPC table. They run the same logic the periodic loops in
// chord/maintenance.go run, just once, synchronously.
func (s *Server) FixFingersTick(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Empty, error) {
	s.node.TickFixFingers(ctx)
	return &dhtv1.Empty{}, nil
}

func (s *Server) StabilizeTick(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.Empty, error) {
	s.node.TickStabilize(ctx)
	return &dhtv1.Empty{}, nil
}

// Handoff implements the client-streaming handoff(stream of kv) peer RPC
// (spec.md §4.8): the caller (a departing predecessor) streams its owned
// pairs, this node ingests each into its local store and acks the count.
func (s *Server) Handoff(stream dhtv1.Chord_HandoffServer) error {
	var pairs []ring.Resource
	for {
		pair, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		pairs = append(pairs, pairToResource(pair))
	}
	count := s.node.IngestHandoff(pairs)
	s.lgr.Info("handoff: ingested", logger.F("count", count))
	return stream.SendAndClose(&dhtv1.HandoffAck{Count: count})
}

func (s *Server) Health(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.HealthResponse, error) {
	return &dhtv1.HealthResponse{OK: s.node.Health()}, nil
}

func (s *Server) Get(ctx context.Context, req *dhtv1.GetRequest) (*dhtv1.GetResponse, error) {
	value, err := s.node.HandleGet(ring.ID(req.Key))
	switch {
	case err == nil:
		return &dhtv1.GetResponse{Status: dhtv1.StatusOK, Value: value}, nil
	case errors.Is(err, client.ErrNotFound):
		return &dhtv1.GetResponse{Status: dhtv1.StatusNotFound}, nil
	case errors.Is(err, client.ErrOutOfRange):
		return &dhtv1.GetResponse{Status: dhtv1.StatusOutOfRange}, nil
	default:
		return nil, status.Errorf(codes.Internal, "get: %v", err)
	}
}

func (s *Server) Put(ctx context.Context, req *dhtv1.PutRequest) (*dhtv1.PutResponse, error) {
	res := ring.Resource{Key: ring.ID(req.Key), Value: req.Value}
	if req.TTLSeconds > 0 {
		res.Expiry = ttlToExpiry(req.TTLSeconds)
	}
	err := s.node.HandlePut(res)
	switch {
	case err == nil:
		return &dhtv1.PutResponse{Status: dhtv1.StatusOK}, nil
	case errors.Is(err, client.ErrOutOfRange):
		return &dhtv1.PutResponse{Status: dhtv1.StatusOutOfRange}, nil
	default:
		return nil, status.Errorf(codes.Internal, "put: %v", err)
	}
}

func (s *Server) GetNodeSummary(ctx context.Context, _ *dhtv1.Empty) (*dhtv1.NodeSummary, error) {
	self := s.node.Self()
	summary := &dhtv1.NodeSummary{
		SelfAddress: self.Addr,
		SelfID:      self.ID.ToHex(),
		Fingers:     s.node.FingerSnapshot(),
	}
	if pred, ok := s.node.Predecessor(); ok {
		summary.HasPredecessor = true
		summary.PredecessorAddress = pred.Addr
	}
	for _, n := range s.node.SuccessorList() {
		summary.Successors = append(summary.Successors, n.Addr)
	}
	return summary, nil
}

// GetKVStoreData streams the full local store (debug reflection, spec.md
// §4.5).
func (s *Server) GetKVStoreData(_ *dhtv1.Empty, stream dhtv1.Chord_GetKVStoreDataServer) error {
	for _, res := range s.node.AllOwned() {
		pair := &dhtv1.HandoffPair{Key: res.Key, Value: res.Value}
		if !res.Expiry.IsZero() {
			pair.ExpiresAtUnix = res.Expiry.Unix()
		}
		if err := stream.Send(pair); err != nil {
			return err
		}
	}
	return nil
}

// Package dhtv1 is the hand-vendored client/server stub for the peer RPC
// surface defined in dht.proto. It is shaped the way protoc-gen-go and
// protoc-gen-go-grpc output is shaped (plain message structs, a ServiceDesc,
// typed client/server interfaces) but skips the descriptor/reflection
// machinery those generators build on: messages here carry ordinary Go
// struct tags for codec/jsoncodec rather than protobuf wire tags, and are
// marshaled by the jsoncodec registered in codec.go instead of protobuf's
// wire format. See DESIGN.md for why this repo doesn't invoke protoc.
package dhtv1

// Status mirrors the dht.proto Status enum.
type Status int32

const (
	StatusOK          Status = 0
	StatusNotFound    Status = 1
	StatusOutOfRange  Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusOutOfRange:
		return "OUT_OF_RANGE"
	default:
		return "UNKNOWN"
	}
}

type Empty struct{}

type FindSuccessorRequest struct {
	TargetID []byte `json:"target_id"`
}

type FindSuccessorResponse struct {
	Address string `json:"address"`
}

type GetPredecessorResponse struct {
	Present bool   `json:"present"`
	Address string `json:"address"`
}

type GetSuccessorListResponse struct {
	Addresses []string `json:"addresses"`
}

type ClosestPrecedingFingerRequest struct {
	TargetID []byte `json:"target_id"`
}

type ClosestPrecedingFingerResponse struct {
	Address string `json:"address"`
}

type NotifyRequest struct {
	Address string `json:"address"`
}

// HandoffPair is both the element of the Notify reply stream and the
// element of the Handoff request stream (dht.proto).
type HandoffPair struct {
	Key           []byte `json:"key"`
	Value         []byte `json:"value"`
	ExpiresAtUnix int64  `json:"expires_at_unix"`
}

type HandoffAck struct {
	Count int32 `json:"count"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type GetRequest struct {
	Key []byte `json:"key"`
}

type GetResponse struct {
	Status Status `json:"status"`
	Value  []byte `json:"value"`
}

type PutRequest struct {
	Key         []byte `json:"key"`
	Value       []byte `json:"value"`
	TTLSeconds  uint32 `json:"ttl_seconds"`
	Replication uint32 `json:"replication"`
}

type PutResponse struct {
	Status Status `json:"status"`
}

type NodeSummary struct {
	SelfAddress        string   `json:"self_address"`
	SelfID             string   `json:"self_id"`
	HasPredecessor     bool     `json:"has_predecessor"`
	PredecessorAddress string   `json:"predecessor_address"`
	Successors         []string `json:"successors"`
	Fingers            []string `json:"fingers"`
}

package dhtv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// jsonCodecName is used both as the encoding.Codec registration name and as
// the gRPC content-subtype, so wire frames show up as "application/grpc+json".
const jsonCodecName = "json"

// jsonCodec implements google.golang.org/grpc/encoding.Codec. Every peer RPC
// message in this package is a plain struct, so JSON is sufficient to carry
// them; grpc-go only needs Marshal/Unmarshal/Name to drive framing,
// compression and streaming exactly as it would for protobuf.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("dhtv1: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dhtv1: unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallContentSubtype is the grpc.CallContentSubtype value dialers/callers
// should pass so the client sends this codec's content-subtype on every
// request, matching the subtype the server is registered to serve.
func CallContentSubtype() string { return jsonCodecName }

// Package clientapi implements the byte-framed client TCP listener (spec.md
// §6.1, part of C10): a minimal length-prefixed protocol for put/get, kept
// alive across requests. Grounded on the teacher's cmd/cache-client and
// internal/node/server/http.go for the "accept loop, one goroutine per
// connection" shape, adapted from HTTP/JSON framing to the spec's raw
// big-endian frames.
package clientapi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Opcodes, per spec.md §6.1.
const (
	OpPut     uint16 = 650
	OpGet     uint16 = 651
	OpSuccess uint16 = 652
	OpFailure uint16 = 653
)

// KeyLen is the fixed client-supplied key width, per spec.md §6.1.
const KeyLen = 32

// headerLen is the frame's size+code prefix: two u16 BE fields.
const headerLen = 4

// ErrFrameTooShort is returned when a frame's declared size can't hold its
// opcode's fixed fields.
var ErrFrameTooShort = errors.New("clientapi: frame too short for opcode")

// PutRequest is a decoded PUT frame.
type PutRequest struct {
	TTLSeconds  uint16
	Replication uint8
	Key         [KeyLen]byte
	Value       []byte
}

// GetRequest is a decoded GET frame.
type GetRequest struct {
	Key [KeyLen]byte
}

// readFrame reads one complete frame (header + payload) from r. The first
// two bytes are the total frame size (including the 4-byte header itself,
// matching how writeFrame computes it); io.EOF propagates unchanged so the
// caller can close the connection cleanly between requests, per spec.md
// §6.1 ("EOF closes cleanly").
func readFrame(r io.Reader) (code uint16, payload []byte, err error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	size := binary.BigEndian.Uint16(hdr[0:2])
	code = binary.BigEndian.Uint16(hdr[2:4])
	if int(size) < headerLen {
		return 0, nil, fmt.Errorf("clientapi: declared size %d smaller than header", size)
	}
	payload = make([]byte, int(size)-headerLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return code, payload, nil
}

// decodePut parses a PUT payload: ttl(u16 BE), replication(u8), reserved(u8),
// key(32 bytes), value(remainder).
func decodePut(payload []byte) (PutRequest, error) {
	const fixed = 2 + 1 + 1 + KeyLen
	if len(payload) < fixed {
		return PutRequest{}, ErrFrameTooShort
	}
	var req PutRequest
	req.TTLSeconds = binary.BigEndian.Uint16(payload[0:2])
	req.Replication = payload[2]
	// payload[3] is reserved.
	copy(req.Key[:], payload[4:4+KeyLen])
	req.Value = append([]byte(nil), payload[4+KeyLen:]...)
	return req, nil
}

// decodeGet parses a GET payload: key(32 bytes).
func decodeGet(payload []byte) (GetRequest, error) {
	if len(payload) < KeyLen {
		return GetRequest{}, ErrFrameTooShort
	}
	var req GetRequest
	copy(req.Key[:], payload[:KeyLen])
	return req, nil
}

// writeFrame writes a complete frame: size (header+payload), code, payload.
func writeFrame(w io.Writer, code uint16, payload []byte) error {
	size := headerLen + len(payload)
	buf := make([]byte, size)
	binary.BigEndian.PutUint16(buf[0:2], uint16(size))
	binary.BigEndian.PutUint16(buf[2:4], code)
	copy(buf[headerLen:], payload)
	_, err := w.Write(buf)
	return err
}

// writeSuccess writes a SUCCESS reply: key(32), value(remainder).
func writeSuccess(w io.Writer, key [KeyLen]byte, value []byte) error {
	payload := make([]byte, KeyLen+len(value))
	copy(payload, key[:])
	copy(payload[KeyLen:], value)
	return writeFrame(w, OpSuccess, payload)
}

// writeFailure writes a FAILURE reply: key(32).
func writeFailure(w io.Writer, key [KeyLen]byte) error {
	return writeFrame(w, OpFailure, key[:])
}

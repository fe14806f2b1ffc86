package clientapi

import (
	"bytes"
	"testing"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0x01, 0x02, 0x03}
	if err := writeFrame(&buf, OpGet, payload); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	code, got, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if code != OpGet {
		t.Errorf("code = %d, want %d", code, OpGet)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %v, want %v", got, payload)
	}
}

func TestDecodePut(t *testing.T) {
	var buf bytes.Buffer
	var key [KeyLen]byte
	key[0] = 0xAB
	value := []byte("hello")

	payload := make([]byte, 2+1+1+KeyLen+len(value))
	payload[0], payload[1] = 0x00, 0x3C // ttl = 60
	payload[2] = 1                      // replication
	copy(payload[4:4+KeyLen], key[:])
	copy(payload[4+KeyLen:], value)

	if err := writeFrame(&buf, OpPut, payload); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	code, got, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if code != OpPut {
		t.Fatalf("code = %d, want %d", code, OpPut)
	}
	req, err := decodePut(got)
	if err != nil {
		t.Fatalf("decodePut: %v", err)
	}
	if req.TTLSeconds != 60 {
		t.Errorf("TTLSeconds = %d, want 60", req.TTLSeconds)
	}
	if req.Replication != 1 {
		t.Errorf("Replication = %d, want 1", req.Replication)
	}
	if req.Key != key {
		t.Errorf("Key mismatch")
	}
	if !bytes.Equal(req.Value, value) {
		t.Errorf("Value = %q, want %q", req.Value, value)
	}
}

func TestDecodeGetTooShort(t *testing.T) {
	if _, err := decodeGet([]byte{1, 2, 3}); err != ErrFrameTooShort {
		t.Errorf("decodeGet short payload: err = %v, want ErrFrameTooShort", err)
	}
}

func TestWriteSuccessFailure(t *testing.T) {
	var buf bytes.Buffer
	var key [KeyLen]byte
	key[5] = 0x42

	if err := writeSuccess(&buf, key, []byte("v")); err != nil {
		t.Fatalf("writeSuccess: %v", err)
	}
	code, payload, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if code != OpSuccess {
		t.Errorf("code = %d, want OpSuccess", code)
	}
	if !bytes.Equal(payload[:KeyLen], key[:]) {
		t.Errorf("echoed key mismatch")
	}
	if string(payload[KeyLen:]) != "v" {
		t.Errorf("value = %q, want %q", payload[KeyLen:], "v")
	}

	buf.Reset()
	if err := writeFailure(&buf, key); err != nil {
		t.Fatalf("writeFailure: %v", err)
	}
	code, payload, err = readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if code != OpFailure {
		t.Errorf("code = %d, want OpFailure", code)
	}
	if !bytes.Equal(payload, key[:]) {
		t.Errorf("failure payload mismatch")
	}
}

package dhtv1

import "testing"

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	in := &PutRequest{Key: []byte{1, 2, 3}, Value: []byte("v"), TTLSeconds: 5}

	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	out := new(PutRequest)
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if string(out.Key) != string(in.Key) || out.TTLSeconds != in.TTLSeconds {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusOK:         "OK",
		StatusNotFound:   "NOT_FOUND",
		StatusOutOfRange: "OUT_OF_RANGE",
		Status(99):       "UNKNOWN",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}

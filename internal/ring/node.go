package ring

import "time"

// Node identifies a peer on the ring: its position and its dial address.
// Peer RPC messages carry only the address; the receiving side rebuilds
// the Node by hashing it.
type Node struct {
	ID   ID
	Addr string
}

// Equal compares two node pointers by identity (nil-safe) and then by ID.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.ID.Equal(other.ID)
}

// Resource is an opaque key/value pair stored in the DHT, per the data
// model in spec.md §3. Key is the ring position of the client's KeyLen-byte
// key (Space.Hash of it, Space.ByteLen bytes), not the client key itself;
// Expiry is the zero time when the pair never expires.
type Resource struct {
	Key    ID
	Value  []byte
	Expiry time.Time
}

// Expired reports whether the resource's TTL has elapsed.
func (r Resource) Expired(now time.Time) bool {
	return !r.Expiry.IsZero() && now.After(r.Expiry)
}

// KeyLen is the fixed width of a client-supplied key, per §6.1.
const KeyLen = 32

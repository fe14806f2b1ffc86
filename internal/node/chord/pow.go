package chord

import (
	"crypto/sha256"
	"encoding/binary"
)

// solvePoW implements the optional proof-of-work join admission gate of
// spec.md §6.3/§9 ("gated by pow_difficulty in configuration; set to 0 to
// disable"): find the smallest nonce such that sha256(addr || nonce) has at
// least `difficulty` leading zero bits. This is a local admission cost paid
// by the joining node before it dials a bootstrap peer; the wire protocol
// in this implementation doesn't carry the nonce onward (findSuccessor is
// reused for every lookup, not just joins), so the puzzle rate-limits join
// attempts from this process rather than being verified remotely — see
// DESIGN.md for the reasoning.
func solvePoW(addr string, difficulty int) uint64 {
	var nonce uint64
	for {
		if leadingZeroBits(addr, nonce) >= difficulty {
			return nonce
		}
		nonce++
	}
}

func leadingZeroBits(addr string, nonce uint64) int {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, nonce)
	sum := sha256.Sum256(append([]byte(addr), buf...))

	zeros := 0
	for _, b := range sum {
		if b == 0 {
			zeros += 8
			continue
		}
		for i := 7; i >= 0; i-- {
			if b&(1<<uint(i)) != 0 {
				return zeros
			}
			zeros++
		}
	}
	return zeros
}

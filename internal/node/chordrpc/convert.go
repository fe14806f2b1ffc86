package chordrpc

import (
	"time"

	dhtv1 "chorddht/internal/api/dht/v1"
	"chorddht/internal/ring"
)

func pairToResource(p *dhtv1.HandoffPair) ring.Resource {
	res := ring.Resource{Key: ring.ID(p.Key), Value: p.Value}
	if p.ExpiresAtUnix > 0 {
		res.Expiry = time.Unix(p.ExpiresAtUnix, 0).UTC()
	}
	return res
}

func ttlToExpiry(ttlSeconds uint32) time.Time {
	return time.Now().Add(time.Duration(ttlSeconds) * time.Second)
}

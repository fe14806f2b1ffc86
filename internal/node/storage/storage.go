// Package storage implements the local key/value store (spec.md §3 "local
// store S"): a mapping from content key to value with optional expiration
// and a range-iteration contract used by handoff (spec.md §4.5.3/§4.8).
package storage

import (
	"errors"
	"sync"
	"time"

	"chorddht/internal/logger"
	"chorddht/internal/ring"
)

// ErrNotFound is returned by Get when the key isn't present (or has
// expired), mirroring the teacher's per-operation sentinel error style.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the lock-protected local key/value map. It is the only shared
// mutable structure outside a node's four routing-state locks (spec.md §5);
// every mutating method takes its own lock rather than relying on a caller
// to hold one, so handoff's read-then-delete sequence never has to reach
// across package boundaries while holding a lock.
type Storage struct {
	mu   sync.RWMutex
	data map[string]ring.Resource
	lgr  logger.Logger
}

// New creates an empty in-memory store.
func New(lgr logger.Logger) *Storage {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Storage{data: make(map[string]ring.Resource), lgr: lgr}
}

// Put inserts or overwrites a resource.
func (s *Storage) Put(res ring.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[string(res.Key)] = res
}

// Get returns the resource for key, or ErrNotFound if absent or expired.
// An expired entry is evicted lazily on the next Get/All/Range that
// observes it.
func (s *Storage) Get(key ring.ID) (ring.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.data[string(key)]
	if !ok {
		return ring.Resource{}, ErrNotFound
	}
	if res.Expired(time.Now()) {
		delete(s.data, string(key))
		return ring.Resource{}, ErrNotFound
	}
	return res, nil
}

// Delete removes key, if present. Deleting an absent key is not an error:
// callers don't need to distinguish "already gone" from "removed".
func (s *Storage) Delete(key ring.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, string(key))
}

// All returns a snapshot of every non-expired resource, used by debug
// reflection (§4.5 getKvStoreData) and by full-ring handoff when the
// predecessor is absent (the node provisionally owns everything).
func (s *Storage) All() []ring.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]ring.Resource, 0, len(s.data))
	for k, res := range s.data {
		if res.Expired(now) {
			delete(s.data, k)
			continue
		}
		out = append(out, res)
	}
	return out
}

// TakeRange atomically removes and returns every resource whose hashed key
// lies in the closed arc [a, b] (or the whole store, when the caller passes
// wholeRing=true for the predecessor-absent case), per the read-then-delete
// contract of spec.md §5: each pair is removed under the same lock that
// read it, so concurrent Put/Get for the same key can't observe it on two
// nodes at once nor lose it between the read and the delete.
func (s *Storage) TakeRange(sp ring.Space, a, b ring.ID, wholeRing bool) []ring.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var taken []ring.Resource
	for k, res := range s.data {
		if res.Expired(now) {
			delete(s.data, k)
			continue
		}
		if wholeRing || ring.Between(res.Key, a, b, false, false) {
			taken = append(taken, res)
			delete(s.data, k)
		}
	}
	return taken
}

// Len reports the current (non-expiry-aware) entry count, for metrics.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

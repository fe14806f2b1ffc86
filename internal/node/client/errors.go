package client

import (
	"errors"
	"time"
)

// ErrNotFound mirrors the peer's NOT_FOUND status for a get() call.
var ErrNotFound = errors.New("client: key not found")

// ErrOutOfRange mirrors the peer's OUT_OF_RANGE status: the local executor
// routed to the wrong node and must re-resolve (spec.md §4.5.4).
var ErrOutOfRange = errors.New("client: key not owned by peer")

func unixToTime(sec int64) time.Time { return time.Unix(sec, 0).UTC() }
func timeToUnix(t time.Time) int64   { return t.Unix() }

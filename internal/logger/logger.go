// Package logger defines the structured logging facade used across the
// node. Every component takes a Logger, never a concrete implementation, so
// chord/chordrpc/client/etc. can run silently in unit tests (NopLogger) and
// loudly in production (the zap-backed implementation in logger/zap).
package logger

import "chorddht/internal/ring"

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// F builds a Field. Kept as a free function (rather than a method) so call
// sites read as logger.F("err", err), matching the teacher's usage.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// FNode builds a Field describing a ring.Node, used pervasively in join,
// stabilize, and notify logging.
func FNode(key string, n *ring.Node) Field {
	if n == nil {
		return Field{Key: key, Value: "<nil>"}
	}
	return Field{Key: key, Value: n.Addr + "#" + n.ID.ToHex()}
}

// Logger is the structured logging surface every component depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Named returns a child logger scoped under an additional name segment.
	Named(name string) Logger

	// WithNode returns a child logger that attaches this node's identity to
	// every subsequent record.
	WithNode(n ring.Node) Logger
}

// NopLogger discards everything. Used as the zero-value logger for
// components constructed outside of main (unit tests, library callers that
// don't care about logging).
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)     {}
func (NopLogger) Info(string, ...Field)      {}
func (NopLogger) Warn(string, ...Field)      {}
func (NopLogger) Error(string, ...Field)     {}
func (n NopLogger) Named(string) Logger      { return n }
func (n NopLogger) WithNode(ring.Node) Logger { return n }

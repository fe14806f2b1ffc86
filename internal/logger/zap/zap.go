// Package zap backs the logger.Logger facade with go.uber.org/zap, rotating
// log files through gopkg.in/natefinch/lumberjack.v2, the way the teacher's
// cmd/node/main.go builds its production logger via zapfactory.New /
// zapfactory.NewZapAdapter.
package zap

import (
	"fmt"
	"os"

	"chorddht/internal/logger"
	"chorddht/internal/ring"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Config configures the zap-backed logger, loaded from the node's [logger]
// config section.
type Config struct {
	Active     bool
	Level      string // debug|info|warn|error
	FilePath   string // empty disables file rotation; stderr is always on
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a *zap.Logger from Config: a console encoder to stderr, plus an
// optional rotated JSON file sink when FilePath is set.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelOrDefault(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("zap: invalid log level %q: %w", cfg.Level, err)
	}

	consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(zapcore.AddSync(os.Stderr)), level),
	}

	if cfg.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		jsonEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(jsonEnc, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func levelOrDefault(s string) string {
	if s == "" {
		return "info"
	}
	return s
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Adapter implements logger.Logger on top of a *zap.Logger, translating
// logger.Field into zap.Field lazily at the call site.
type Adapter struct {
	z *zap.Logger
}

// NewZapAdapter wraps an already-constructed *zap.Logger.
func NewZapAdapter(z *zap.Logger) *Adapter {
	return &Adapter{z: z}
}

func toZapFields(fields []logger.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

func (a *Adapter) Debug(msg string, fields ...logger.Field) { a.z.Debug(msg, toZapFields(fields)...) }
func (a *Adapter) Info(msg string, fields ...logger.Field)  { a.z.Info(msg, toZapFields(fields)...) }
func (a *Adapter) Warn(msg string, fields ...logger.Field)  { a.z.Warn(msg, toZapFields(fields)...) }
func (a *Adapter) Error(msg string, fields ...logger.Field) { a.z.Error(msg, toZapFields(fields)...) }

func (a *Adapter) Named(name string) logger.Logger {
	return &Adapter{z: a.z.Named(name)}
}

func (a *Adapter) WithNode(n ring.Node) logger.Logger {
	return &Adapter{z: a.z.With(zap.String("node_addr", n.Addr), zap.String("node_id", n.ID.ToHex()))}
}

// Sync flushes buffered log entries; callers defer this in main, same as
// the teacher's `defer func() { _ = zapLog.Sync() }()`.
func (a *Adapter) Sync() error { return a.z.Sync() }

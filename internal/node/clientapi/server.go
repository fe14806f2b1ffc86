package clientapi

import (
	"context"
	"errors"
	"io"
	"net"

	"chorddht/internal/logger"
	"chorddht/internal/node/client"
	"chorddht/internal/node/executor"
	"chorddht/internal/ring"
)

// Server is the byte-framed client listener (spec.md §6.1), accepting one
// goroutine per connection the way the teacher's HTTP server accepts one
// goroutine per request, except connections here are kept alive across
// many request/reply frames instead of closing after one.
type Server struct {
	sp   ring.Space
	exec *executor.Executor
	lgr  logger.Logger
}

// New builds a clientapi.Server around an executor and the node's identifier
// space (needed to hash client-supplied keys into ring positions, per
// spec.md §4.9 step 1).
func New(sp ring.Space, exec *executor.Executor, lgr logger.Logger) *Server {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	return &Server{sp: sp, exec: exec, lgr: lgr}
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn serves frames on one connection until EOF or a framing error,
// per spec.md §6.1 ("keep-alive... EOF closes cleanly").
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	for {
		code, payload, err := readFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				s.lgr.Warn("clientapi: frame read failed", logger.F("err", err))
			}
			return
		}

		switch code {
		case OpPut:
			if err := s.handlePut(ctx, conn, payload); err != nil {
				s.lgr.Warn("clientapi: put failed", logger.F("err", err))
				return
			}
		case OpGet:
			if err := s.handleGet(ctx, conn, payload); err != nil {
				s.lgr.Warn("clientapi: get failed", logger.F("err", err))
				return
			}
		default:
			s.lgr.Warn("clientapi: unknown opcode", logger.F("code", code))
			return
		}
	}
}

func (s *Server) handlePut(ctx context.Context, conn net.Conn, payload []byte) error {
	req, err := decodePut(payload)
	if err != nil {
		return err
	}
	pos := s.sp.Hash(req.Key[:])
	if err := s.exec.Put(ctx, pos, req.Value); err != nil {
		return writeFailure(conn, req.Key)
	}
	return writeSuccess(conn, req.Key, nil)
}

func (s *Server) handleGet(ctx context.Context, conn net.Conn, payload []byte) error {
	req, err := decodeGet(payload)
	if err != nil {
		return err
	}
	pos := s.sp.Hash(req.Key[:])
	value, err := s.exec.Get(ctx, pos)
	if err != nil {
		if !errors.Is(err, client.ErrNotFound) {
			s.lgr.Debug("clientapi: get miss", logger.F("err", err))
		}
		return writeFailure(conn, req.Key)
	}
	return writeSuccess(conn, req.Key, value)
}

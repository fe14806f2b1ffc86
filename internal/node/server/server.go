// Package server wraps the gRPC peer-RPC listener lifecycle (Listen/New/
// Start/Stop/GracefulStop), grounded on the teacher's internal/node/server
// (server2.Listen/server2.New/s.Start/s.GracefulStop call-site shape in
// cmd/node/main.go), reconstructed here since that package wasn't present
// in the retrieval pack. Adapted to register a single chordrpc.Server
// instead of the teacher's DHTNode-interface-backed dispatch.
package server

import (
	"fmt"
	"net"

	dhtv1 "chorddht/internal/api/dht/v1"
	"chorddht/internal/logger"
	"chorddht/internal/node/chordrpc"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Listen opens a TCP listener on bind, returning both the listener and the
// address peers should be told to dial (advertised may differ from bind
// when bind uses an ephemeral port or a wildcard host).
func Listen(bindAddr string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, "", fmt.Errorf("server: listen on %q: %w", bindAddr, err)
	}
	return ln, ln.Addr().String(), nil
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a logger.
func WithLogger(lgr logger.Logger) Option {
	return func(s *Server) { s.lgr = lgr }
}

// WithTracing adds the otelgrpc stats handler, when telemetry is enabled.
func WithTracing(enabled bool) Option {
	return func(s *Server) {
		if enabled {
			s.grpcOpts = append(s.grpcOpts, grpc.StatsHandler(otelgrpc.NewServerHandler(
				otelgrpc.WithTracerProvider(otel.GetTracerProvider()),
				otelgrpc.WithPropagators(otel.GetTextMapPropagator()),
			)))
		}
	}
}

// WithTLS serves the peer RPC surface over TLS using the given cert/key
// pair, instead of the plaintext transport every other pack example assumes
// for its trusted-cluster-network gRPC traffic. Optional: most deployments
// this spec targets run inside a private network and skip it.
func WithTLS(certFile, keyFile string) Option {
	return func(s *Server) {
		creds, err := credentials.NewServerTLSFromFile(certFile, keyFile)
		if err != nil {
			s.tlsErr = fmt.Errorf("server: load TLS cert/key: %w", err)
			return
		}
		s.grpcOpts = append(s.grpcOpts, grpc.Creds(creds))
	}
}

// Server owns the gRPC listener and the registered Chord service.
type Server struct {
	ln       net.Listener
	grpc     *grpc.Server
	grpcOpts []grpc.ServerOption
	lgr      logger.Logger
	tlsErr   error
}

// New builds a Server around an already-open listener and a chordrpc
// handler implementation. A non-nil error surfaces an option that failed
// (e.g. WithTLS given an unreadable cert/key pair) without requiring every
// Option to return one itself.
func New(ln net.Listener, svc *chordrpc.Server, opts ...Option) (*Server, error) {
	s := &Server{ln: ln, lgr: logger.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.tlsErr != nil {
		return nil, s.tlsErr
	}
	s.grpc = grpc.NewServer(s.grpcOpts...)
	dhtv1.RegisterChordServer(s.grpc, svc)
	return s, nil
}

// Start blocks serving RPCs until Stop/GracefulStop is called or the
// listener errors.
func (s *Server) Start() error {
	s.lgr.Info("grpc server: serving", logger.F("addr", s.ln.Addr().String()))
	return s.grpc.Serve(s.ln)
}

// Stop terminates the server immediately, dropping in-flight RPCs.
func (s *Server) Stop() { s.grpc.Stop() }

// GracefulStop waits for in-flight RPCs to complete before returning.
func (s *Server) GracefulStop() { s.grpc.GracefulStop() }

// Command node runs a single Chord DHT ring member: the gRPC peer-RPC
// listener, the byte-framed client API, the four maintenance loops, and
// (optionally) the HTTP debug dashboard and OpenTelemetry tracing.
// Grounded on the teacher's cmd/node/main.go startup sequence (flag parse ->
// config load/validate -> logger init -> listener -> identifier space ->
// telemetry -> client pool -> storage -> protocol node -> gRPC server ->
// bootstrap -> signal-driven graceful shutdown), narrowed to Chord only
// (the teacher's chord/koorde/simple protocol switch has no koorde/simple
// counterpart here) and extended with the client-API listener and
// shutdown handoff (spec.md §4.8) the teacher's Leave never performed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chorddht/internal/config"
	"chorddht/internal/logger"
	zapfactory "chorddht/internal/logger/zap"
	"chorddht/internal/node/bootstrap"
	"chorddht/internal/node/chord"
	"chorddht/internal/node/chordrpc"
	"chorddht/internal/node/client"
	"chorddht/internal/node/clientapi"
	"chorddht/internal/node/dashboard"
	"chorddht/internal/node/executor"
	"chorddht/internal/node/server"
	"chorddht/internal/node/storage"
	"chorddht/internal/ring"
	"chorddht/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "node: fatal:", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func run() error {
	configPath := flag.String("config", "node.ini", "path to the node's INI configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	zapLog, err := zapfactory.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()
	var lgr logger.Logger = zapfactory.NewZapAdapter(zapLog)
	cfg.LogConfig(lgr)

	ln, advertised, err := server.Listen(cfg.DHT.P2PAddress)
	if err != nil {
		return fmt.Errorf("listen p2p: %w", err)
	}
	defer ln.Close()

	space, err := ring.NewSpace(cfg.DHT.IDBits)
	if err != nil {
		return fmt.Errorf("init identifier space: %w", err)
	}

	self := ring.Node{ID: space.Hash([]byte(advertised)), Addr: advertised}
	lgr = lgr.Named("node").WithNode(self)

	shutdownTracer := telemetry.InitTracer(cfg.Telemetry, self.ID.ToHex())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	cp := client.New(advertised, config.FailureTimeout, client.WithLogger(lgr))
	defer cp.Close()

	store := storage.New(lgr)

	st := chord.NewState(self, space, cfg.DHT.SuccListSize, store, lgr)
	node := chord.New(st, cp,
		chord.WithLogger(lgr),
		chord.WithPoWDifficulty(cfg.DHT.PoWDifficulty),
	)

	chordSvc := chordrpc.New(node, lgr)
	srvOpts := []server.Option{
		server.WithLogger(lgr),
		server.WithTracing(cfg.Telemetry.TracingEnabled),
	}
	if cfg.DHT.TLSCertFile != "" && cfg.DHT.TLSKeyFile != "" {
		srvOpts = append(srvOpts, server.WithTLS(cfg.DHT.TLSCertFile, cfg.DHT.TLSKeyFile))
	}
	grpcServer, err := server.New(ln, chordSvc, srvOpts...)
	if err != nil {
		return fmt.Errorf("init grpc server: %w", err)
	}

	exec := executor.New(node, executor.WithLogger(lgr))
	apiLn, _, err := server.Listen(cfg.DHT.APIAddress)
	if err != nil {
		return fmt.Errorf("listen client api: %w", err)
	}
	defer apiLn.Close()
	apiSrv := clientapi.New(space, exec, lgr)

	var dash *dashboard.Server
	if cfg.DHT.WebAddress != "" {
		dash = dashboard.New(cfg.DHT.WebAddress, node, lgr)
	}

	register, err := newBootstrap(cfg.DHT)
	if err != nil {
		return fmt.Errorf("init bootstrap: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	peers, err := register.Discover(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap discover: %w", err)
	}
	if len(peers) == 0 {
		node.CreateNewDHT()
	} else if err := node.Join(peers); err != nil {
		return fmt.Errorf("join ring: %w", err)
	}
	if err := register.Register(ctx, advertised); err != nil {
		lgr.Warn("bootstrap: register failed", logger.F("err", err))
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := register.Deregister(dctx, advertised); err != nil {
			lgr.Warn("bootstrap: deregister failed", logger.F("err", err))
		}
	}()

	node.StartMaintenance(ctx, chord.DefaultIntervals())

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Start() }()

	apiErr := make(chan error, 1)
	go func() { apiErr <- apiSrv.Serve(ctx, apiLn) }()

	dashErr := make(chan error, 1)
	if dash != nil {
		go func() { dashErr <- dash.Start() }()
	}

	lgr.Info("node: started",
		logger.F("p2p_address", advertised),
		logger.F("api_address", cfg.DHT.APIAddress),
		logger.F("id", self.ID.ToHex()),
	)

	select {
	case <-ctx.Done():
		lgr.Info("node: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			lgr.Error("node: grpc server exited", logger.F("err", err))
		}
	case err := <-apiErr:
		if err != nil {
			lgr.Error("node: client api server exited", logger.F("err", err))
		}
	case err := <-dashErr:
		if err != nil {
			lgr.Error("node: dashboard exited", logger.F("err", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.FailureTimeout*2)
	defer cancel()
	node.ShutdownHandoff(shutdownCtx)

	if dash != nil {
		_ = dash.Stop(shutdownCtx)
	}

	stopped := make(chan struct{})
	go func() { grpcServer.GracefulStop(); close(stopped) }()
	select {
	case <-stopped:
	case <-time.After(config.FailureTimeout):
		grpcServer.Stop()
	}

	node.Stop()

	return nil
}

// newBootstrap selects the peer-discovery mechanism by cfg.DHT.BootstrapMode,
// mirroring the teacher's main.go bootstrap-mode switch.
func newBootstrap(dht config.DHT) (bootstrap.Bootstrap, error) {
	switch dht.BootstrapMode {
	case "route53":
		return bootstrap.NewRoute53Bootstrap(bootstrap.Route53Config{
			HostedZoneID: dht.Route53ZoneID,
			RecordName:   dht.Route53Record,
			TTLSeconds:   dht.Route53TTLSecs,
		})
	default:
		var peers []string
		if dht.JoinAddress != "" {
			peers = []string{dht.JoinAddress}
		}
		return bootstrap.NewStaticBootstrap(peers), nil
	}
}

// Package config loads and validates the node's INI configuration file
// (spec.md §6.3: "INI-style file with a single [dht] section"). Grounded
// on the teacher's config.LoadConfig/ValidateConfig/LogConfig call-site
// shape (cmd/node/main.go), adapted from the teacher's YAML file (loaded
// via gopkg.in/yaml.v3) to INI (gopkg.in/ini.v1) since the spec mandates
// the INI format explicitly, with the teacher's Logger/Telemetry
// sub-sections carried over as additional [logger]/[telemetry] sections —
// see DESIGN.md.
package config

import (
	"fmt"
	"time"

	"chorddht/internal/logger"
	zapfactory "chorddht/internal/logger/zap"

	"gopkg.in/ini.v1"
)

// DHT mirrors the recognised [dht] keys of spec.md §6.3, plus id_bits and
// succ_list_size: spec.md §3/§9 requires the ring-bit-width M and the
// successor-list size R to be configured constants shared cluster-wide
// (an explicit Open Question spec.md leaves unresolved — this repo decides
// it by making both config keys, defaulting to the spec's recommended
// M=128 and the reference's R=3).
type DHT struct {
	P2PAddress    string
	APIAddress    string
	WebAddress    string
	JoinAddress   string
	PoWDifficulty int
	LogLevel      string
	DevMode       bool

	IDBits       int
	SuccListSize int

	// TLSCertFile/TLSKeyFile, when both set, serve the peer RPC listener over
	// TLS (internal/node/server.WithTLS). Left empty, the listener is
	// plaintext — the default for the trusted-cluster-network deployments
	// this spec targets.
	TLSCertFile string
	TLSKeyFile  string

	BootstrapMode  string // "static" (default) or "route53"
	Route53ZoneID  string
	Route53Record  string
	Route53TTLSecs int64
}

// Telemetry configures the optional [telemetry] section, wiring
// internal/telemetry's tracer.
type Telemetry struct {
	TracingEnabled bool
	ServiceName    string
	OTLPEndpoint   string // empty => stdout exporter
}

// Config is the fully parsed node configuration.
type Config struct {
	DHT       DHT
	Logger    zapfactory.Config
	Telemetry Telemetry
}

// LoadConfig reads and parses the INI file at path.
func LoadConfig(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %q: %w", path, err)
	}

	dhtSec := file.Section("dht")
	cfg := &Config{
		DHT: DHT{
			P2PAddress:     dhtSec.Key("p2p_address").String(),
			APIAddress:     dhtSec.Key("api_address").String(),
			WebAddress:     dhtSec.Key("web_address").String(),
			JoinAddress:    dhtSec.Key("join_address").String(),
			LogLevel:       dhtSec.Key("log_level").MustString("info"),
			DevMode:        dhtSec.Key("dev_mode").MustBool(false),
			IDBits:         dhtSec.Key("id_bits").MustInt(128),
			SuccListSize:   dhtSec.Key("succ_list_size").MustInt(3),
			TLSCertFile:    dhtSec.Key("tls_cert_file").String(),
			TLSKeyFile:     dhtSec.Key("tls_key_file").String(),
			BootstrapMode:  dhtSec.Key("bootstrap_mode").MustString("static"),
			Route53ZoneID:  dhtSec.Key("route53_zone_id").String(),
			Route53Record:  dhtSec.Key("route53_record").String(),
			Route53TTLSecs: dhtSec.Key("route53_ttl_seconds").MustInt64(30),
		},
	}
	cfg.DHT.PoWDifficulty, err = dhtSec.Key("pow_difficulty").Int()
	if err != nil && dhtSec.Key("pow_difficulty").String() != "" {
		return nil, fmt.Errorf("config: pow_difficulty must be an integer: %w", err)
	}

	logSec := file.Section("logger")
	cfg.Logger = zapfactory.Config{
		Active:     logSec.Key("active").MustBool(true),
		Level:      logSec.Key("level").MustString(cfg.DHT.LogLevel),
		FilePath:   logSec.Key("file_path").String(),
		MaxSizeMB:  logSec.Key("max_size_mb").MustInt(0),
		MaxBackups: logSec.Key("max_backups").MustInt(0),
		MaxAgeDays: logSec.Key("max_age_days").MustInt(0),
	}

	telSec := file.Section("telemetry")
	cfg.Telemetry = Telemetry{
		TracingEnabled: telSec.Key("tracing_enabled").MustBool(false),
		ServiceName:    telSec.Key("service_name").MustString("chorddht-node"),
		OTLPEndpoint:   telSec.Key("otlp_endpoint").String(),
	}

	return cfg, nil
}

// ValidateConfig enforces the required keys of spec.md §6.3 and the
// exit-code-1 contract of §6.4 ("startup failure (config parse...)").
func (c *Config) ValidateConfig() error {
	if c.DHT.P2PAddress == "" {
		return fmt.Errorf("config: p2p_address is required")
	}
	if c.DHT.APIAddress == "" {
		return fmt.Errorf("config: api_address is required")
	}
	if c.DHT.PoWDifficulty < 0 {
		return fmt.Errorf("config: pow_difficulty must be >= 0")
	}
	if c.DHT.IDBits <= 0 || c.DHT.IDBits > 512 {
		return fmt.Errorf("config: id_bits must be in (0, 512]")
	}
	if c.DHT.SuccListSize <= 0 {
		return fmt.Errorf("config: succ_list_size must be > 0")
	}
	if (c.DHT.TLSCertFile == "") != (c.DHT.TLSKeyFile == "") {
		return fmt.Errorf("config: tls_cert_file and tls_key_file must both be set or both empty")
	}
	switch c.DHT.BootstrapMode {
	case "static":
	case "route53":
		if c.DHT.Route53ZoneID == "" || c.DHT.Route53Record == "" {
			return fmt.Errorf("config: route53 bootstrap requires route53_zone_id and route53_record")
		}
	default:
		return fmt.Errorf("config: unsupported bootstrap_mode %q", c.DHT.BootstrapMode)
	}
	return nil
}

// LogConfig emits the resolved configuration at startup, mirroring the
// teacher's cfg.LogConfig(lgr) call in main.go.
func (c *Config) LogConfig(lgr logger.Logger) {
	lgr.Info("configuration loaded",
		logger.F("p2p_address", c.DHT.P2PAddress),
		logger.F("api_address", c.DHT.APIAddress),
		logger.F("web_address", c.DHT.WebAddress),
		logger.F("join_address", c.DHT.JoinAddress),
		logger.F("pow_difficulty", c.DHT.PoWDifficulty),
		logger.F("id_bits", c.DHT.IDBits),
		logger.F("succ_list_size", c.DHT.SuccListSize),
		logger.F("log_level", c.DHT.LogLevel),
		logger.F("dev_mode", c.DHT.DevMode),
		logger.F("bootstrap_mode", c.DHT.BootstrapMode),
		logger.F("tls_enabled", c.DHT.TLSCertFile != ""),
		logger.F("tracing_enabled", c.Telemetry.TracingEnabled),
	)
}

// FailureTimeout is the peer RPC timeout spec.md §5 names ("a few
// seconds"), not presently exposed as a config key — a fixed ambient
// constant rather than a per-deployment tunable.
const FailureTimeout = 3 * time.Second

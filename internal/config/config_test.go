package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "node.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
p2p_address = 127.0.0.1:7000
api_address = 127.0.0.1:7001
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DHT.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.DHT.LogLevel, "info")
	}
	if cfg.DHT.BootstrapMode != "static" {
		t.Errorf("BootstrapMode = %q, want %q", cfg.DHT.BootstrapMode, "static")
	}
	if cfg.DHT.PoWDifficulty != 0 {
		t.Errorf("PoWDifficulty = %d, want 0", cfg.DHT.PoWDifficulty)
	}
	if cfg.DHT.IDBits != 128 {
		t.Errorf("IDBits = %d, want 128 (default)", cfg.DHT.IDBits)
	}
	if cfg.DHT.SuccListSize != 3 {
		t.Errorf("SuccListSize = %d, want 3 (default)", cfg.DHT.SuccListSize)
	}
	if cfg.Logger.Active != true {
		t.Errorf("Logger.Active = %v, want true (default)", cfg.Logger.Active)
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("ValidateConfig: %v", err)
	}
}

func TestValidateConfigMissingRequired(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
web_address = 127.0.0.1:7002
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("ValidateConfig: want error for missing p2p_address/api_address")
	}
}

func TestValidateConfigRoute53RequiresZone(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
p2p_address = 127.0.0.1:7000
api_address = 127.0.0.1:7001
bootstrap_mode = route53
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("ValidateConfig: want error for route53 mode without zone/record")
	}
}

func TestValidateConfigRejectsBadIDBits(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
p2p_address = 127.0.0.1:7000
api_address = 127.0.0.1:7001
id_bits = 0
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("ValidateConfig: want error for id_bits = 0")
	}
}

func TestValidateConfigRejectsUnpairedTLSFiles(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
p2p_address = 127.0.0.1:7000
api_address = 127.0.0.1:7001
tls_cert_file = /tmp/cert.pem
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("ValidateConfig: want error when tls_cert_file is set without tls_key_file")
	}
}

func TestLoadConfigPoWDifficultyAndTelemetry(t *testing.T) {
	path := writeTempConfig(t, `
[dht]
p2p_address = 127.0.0.1:7000
api_address = 127.0.0.1:7001
pow_difficulty = 12

[telemetry]
tracing_enabled = true
otlp_endpoint = localhost:4317
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DHT.PoWDifficulty != 12 {
		t.Errorf("PoWDifficulty = %d, want 12", cfg.DHT.PoWDifficulty)
	}
	if !cfg.Telemetry.TracingEnabled {
		t.Error("Telemetry.TracingEnabled = false, want true")
	}
	if cfg.Telemetry.OTLPEndpoint != "localhost:4317" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.Telemetry.OTLPEndpoint, "localhost:4317")
	}
}

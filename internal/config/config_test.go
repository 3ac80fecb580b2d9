package config

import (
	"testing"
	"time"
)

func TestValidateProxy(t *testing.T) {
	cfg := &Config{TorEnabled: true, TorSocksProxy: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when tor is enabled without a proxy address")
	}

	cfg.TorSocksProxy = "socks5://127.0.0.1:9050"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = &Config{TorEnabled: false}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with proxy disabled: %v", err)
	}
}

func TestProxyServer(t *testing.T) {
	cfg := &Config{TorEnabled: false, TorSocksProxy: "socks5://127.0.0.1:9050"}
	if got := cfg.ProxyServer(); got != "" {
		t.Errorf("expected empty proxy when disabled, got %q", got)
	}

	cfg.TorEnabled = true
	if got := cfg.ProxyServer(); got != "socks5://127.0.0.1:9050" {
		t.Errorf("unexpected proxy address: %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.BrowserPool < 1 {
		t.Errorf("pool size must be at least 1, got %d", cfg.BrowserPool)
	}
	if cfg.NaturalDelayMin != time.Second {
		t.Errorf("expected 1s default min delay, got %v", cfg.NaturalDelayMin)
	}
	if !cfg.Headless {
		t.Error("expected headless by default")
	}
}

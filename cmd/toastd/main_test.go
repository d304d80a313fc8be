package main

import (
	"os"
	"path/filepath"
	"testing"

	"toastd/internal/config"
)

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "toastd.yaml")
	if err := os.WriteFile(p, []byte("addr: :9000\nexpiry_ms: 1000\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TOASTD_ADDR", "")
	t.Setenv("TOASTD_LOG_LEVEL", "")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", p, "--expiry-ms", "250"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	opts := options{configPath: p, expiryMS: 250}
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.ExpiryMS != 250 || cfg.LogLevel != "debug" || cfg.LogFormat != config.DefaultLogFormat {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestResolveConfig_DefaultsWithoutFile(t *testing.T) {
	orig := config.SearchPaths
	t.Cleanup(func() { config.SearchPaths = orig })
	config.SearchPaths = nil
	t.Setenv("TOASTD_ADDR", ":7777")
	t.Setenv("TOASTD_LOG_LEVEL", "")

	cmd := newRootCmd()
	cfg, err := resolveConfig(cmd, options{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":7777" || cfg.ExpiryMS != config.DefaultExpiryMS || cfg.Autostart {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestResolveConfig_BadFile(t *testing.T) {
	cmd := newRootCmd()
	if _, err := resolveConfig(cmd, options{configPath: "/nope/toastd.yaml"}); err == nil {
		t.Fatalf("expected load error")
	}
}

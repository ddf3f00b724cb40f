package mcp

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected default cache TTL 1h, got %v", cfg.CacheTTL)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-cache", "/tmp/payloads.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.CachePath != "/tmp/payloads.db" {
		t.Fatalf("expected cache flag, got %q", cfg.CachePath)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("SHEETWRIGHT_MCP_TRANSPORT", "http")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("session_token: file-token\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-config", path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SessionToken != "file-token" {
		t.Fatalf("expected file session token, got %q", cfg.SessionToken)
	}
}

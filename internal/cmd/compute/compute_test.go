package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
)

const fighterPayload = `{
	"name": "Korra",
	"level": 3,
	"classes": [{"name": "fighter", "level": 3}],
	"stats": {"str": 16, "dex": 14, "con": 14, "int": 10, "wis": 12, "cha": 8},
	"race": {"name": "Human"},
	"sourcebooks": ["phb-2014"]
}`

func writeInputFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "character.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write input file: %v", err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Format != FormatJSON {
		t.Fatalf("expected default json format, got %q", cfg.Format)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected default cache TTL 1h, got %v", cfg.CacheTTL)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	args := []string{"-input", "char.json", "-format", "markdown", "-force-legacy"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Input != "char.json" {
		t.Fatalf("expected input flag, got %q", cfg.Input)
	}
	if cfg.Format != FormatMarkdown {
		t.Fatalf("expected markdown format, got %q", cfg.Format)
	}
	if !cfg.ForceLegacy || cfg.ForceModern {
		t.Fatalf("expected force-legacy only, got legacy=%v modern=%v", cfg.ForceLegacy, cfg.ForceModern)
	}
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "session_token: file-token\ncache_path: /tmp/cache.db\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-config", path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SessionToken != "file-token" {
		t.Fatalf("expected file session token, got %q", cfg.SessionToken)
	}
	if cfg.CachePath != "/tmp/cache.db" {
		t.Fatalf("expected file cache path, got %q", cfg.CachePath)
	}
}

func TestParseConfigEnvBeatsFile(t *testing.T) {
	t.Setenv("SHEETWRIGHT_SESSION_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("session_token: file-token\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-config", path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SessionToken != "env-token" {
		t.Fatalf("expected env token to win, got %q", cfg.SessionToken)
	}
}

func TestRunJSONOutput(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		Input:  writeInputFile(t, fighterPayload),
		Format: FormatJSON,
	}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var model dnd5e.CharacterComputedModel
	if err := json.Unmarshal(out.Bytes(), &model); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if model.Name != "Korra" {
		t.Fatalf("expected Korra, got %q", model.Name)
	}
	if model.RuleVersion != dnd5e.RuleVersionLegacy {
		t.Fatalf("expected legacy rules, got %q", model.RuleVersion)
	}
	if model.HitPoints.Total != 28 {
		t.Fatalf("expected 28 hit points, got %d", model.HitPoints.Total)
	}
}

func TestRunMarkdownOutput(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		Input:  writeInputFile(t, fighterPayload),
		Format: FormatMarkdown,
	}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "# Korra") {
		t.Fatalf("expected markdown sheet, got:\n%s", out.String())
	}
}

func TestRunForceModern(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		Input:       writeInputFile(t, fighterPayload),
		ForceModern: true,
	}

	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var model dnd5e.CharacterComputedModel
	if err := json.Unmarshal(out.Bytes(), &model); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if model.RuleVersion != dnd5e.RuleVersionModern {
		t.Fatalf("expected forced modern rules, got %q", model.RuleVersion)
	}
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	if err := Run(ctx, Config{}, &out); err == nil {
		t.Fatal("expected error when no source is given")
	}
	if err := Run(ctx, Config{Input: "a.json", CharacterID: "123"}, &out); err == nil {
		t.Fatal("expected error when both sources are given")
	}
	if err := Run(ctx, Config{Input: filepath.Join(t.TempDir(), "missing.json")}, &out); err == nil {
		t.Fatal("expected error for missing input file")
	}

	cfg := Config{Input: writeInputFile(t, fighterPayload), Format: "xml"}
	if err := Run(ctx, cfg, &out); err == nil {
		t.Fatal("expected error for unknown format")
	}

	cfg = Config{
		Input:       writeInputFile(t, fighterPayload),
		ForceLegacy: true,
		ForceModern: true,
	}
	if err := Run(ctx, cfg, &out); err == nil {
		t.Fatal("expected error for conflicting overrides")
	}
}

// Package compute parses compute CLI flags and runs a single character
// computation.
package compute

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/sheetwright/internal/beyond"
	cachesqlite "github.com/louisbranch/sheetwright/internal/beyond/cache/sqlite"
	cmdplatform "github.com/louisbranch/sheetwright/internal/platform/cmd"
	"github.com/louisbranch/sheetwright/internal/platform/config"
	"github.com/louisbranch/sheetwright/internal/render"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds compute command configuration.
type Config struct {
	SessionToken string        `env:"SHEETWRIGHT_SESSION_TOKEN"`
	CachePath    string        `env:"SHEETWRIGHT_CACHE_PATH"`
	CacheTTL     time.Duration `env:"SHEETWRIGHT_CACHE_TTL" envDefault:"1h"`

	ConfigFile  string
	Input       string
	CharacterID string
	Format      string
	ForceLegacy bool
	ForceModern bool
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	SessionToken string `yaml:"session_token"`
	CachePath    string `yaml:"cache_path"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmdplatform.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "path to a YAML config file")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "path to a raw character JSON file")
	fs.StringVar(&cfg.CharacterID, "character-id", cfg.CharacterID, "remote character ID to fetch")
	fs.StringVar(&cfg.Format, "format", FormatJSON, "output format: json or markdown")
	fs.BoolVar(&cfg.ForceLegacy, "force-legacy", cfg.ForceLegacy, "force 2014 rules, bypassing detection")
	fs.BoolVar(&cfg.ForceModern, "force-modern", cfg.ForceModern, "force 2024 rules, bypassing detection")
	if err := cmdplatform.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	var file fileConfig
	if err := config.LoadFile(cfg.ConfigFile, &file); err != nil {
		return Config{}, err
	}
	if cfg.SessionToken == "" {
		cfg.SessionToken = file.SessionToken
	}
	if cfg.CachePath == "" {
		cfg.CachePath = file.CachePath
	}

	return cfg, nil
}

// Run computes one character and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		return err
	}

	model, err := dnd5e.Compute(snap, dnd5e.Options{
		ForceLegacy: cfg.ForceLegacy,
		ForceModern: cfg.ForceModern,
	})
	if err != nil {
		return fmt.Errorf("compute character: %w", err)
	}

	switch strings.ToLower(cfg.Format) {
	case FormatJSON, "":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(model); err != nil {
			return fmt.Errorf("encode model: %w", err)
		}
	case FormatMarkdown:
		if _, err := io.WriteString(out, render.Markdown(model)); err != nil {
			return fmt.Errorf("write sheet: %w", err)
		}
	default:
		return fmt.Errorf("format %q is not one of json, markdown", cfg.Format)
	}
	return nil
}

func loadSnapshot(ctx context.Context, cfg Config) (dnd5e.CharacterSnapshot, error) {
	switch {
	case cfg.Input != "" && cfg.CharacterID != "":
		return dnd5e.CharacterSnapshot{}, fmt.Errorf("-input and -character-id are mutually exclusive")
	case cfg.Input != "":
		payload, err := os.ReadFile(cfg.Input)
		if err != nil {
			return dnd5e.CharacterSnapshot{}, fmt.Errorf("read input file: %w", err)
		}
		snap, err := beyond.DecodeSnapshot(payload)
		if err != nil {
			return dnd5e.CharacterSnapshot{}, fmt.Errorf("decode input file: %w", err)
		}
		return snap, nil
	case cfg.CharacterID != "":
		opts := beyond.Options{
			Session:  beyond.Session{Token: cfg.SessionToken},
			CacheTTL: cfg.CacheTTL,
		}
		if cfg.CachePath != "" {
			cache, err := cachesqlite.Open(cfg.CachePath)
			if err != nil {
				return dnd5e.CharacterSnapshot{}, fmt.Errorf("open payload cache: %w", err)
			}
			defer cache.Close()
			opts.Cache = cache
		}
		return beyond.New(opts).FetchSnapshot(ctx, cfg.CharacterID)
	default:
		return dnd5e.CharacterSnapshot{}, fmt.Errorf("either -input or -character-id is required")
	}
}

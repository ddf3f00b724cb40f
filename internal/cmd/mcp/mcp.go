// Package mcp parses MCP command flags and starts the MCP server.
package mcp

import (
	"context"
	"flag"
	"time"

	mcpservice "github.com/louisbranch/sheetwright/internal/mcp/service"
	cmdplatform "github.com/louisbranch/sheetwright/internal/platform/cmd"
	"github.com/louisbranch/sheetwright/internal/platform/config"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string        `env:"SHEETWRIGHT_MCP_TRANSPORT" envDefault:"stdio"`
	SessionToken string        `env:"SHEETWRIGHT_SESSION_TOKEN"`
	CachePath    string        `env:"SHEETWRIGHT_CACHE_PATH"`
	CacheTTL     time.Duration `env:"SHEETWRIGHT_CACHE_TTL" envDefault:"1h"`

	ConfigFile string
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
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "path to the SQLite payload cache")
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

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	return cmdplatform.RunWithTelemetry(ctx, cmdplatform.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport:    mcpservice.TransportKind(cfg.Transport),
			SessionToken: cfg.SessionToken,
			CachePath:    cfg.CachePath,
			CacheTTL:     cfg.CacheTTL,
		})
	})
}

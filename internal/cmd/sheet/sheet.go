// Package sheet parses sheet service flags and starts the HTTP API.
package sheet

import (
	"context"
	"flag"

	cmdplatform "github.com/louisbranch/sheetwright/internal/platform/cmd"
	sheetapp "github.com/louisbranch/sheetwright/internal/services/sheet/app"
)

// Config holds sheet service configuration.
type Config struct {
	Port int `env:"SHEETWRIGHT_SHEET_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmdplatform.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	if err := cmdplatform.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sheet HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return cmdplatform.RunWithTelemetry(ctx, cmdplatform.ServiceSheet, func(ctx context.Context) error {
		return sheetapp.Run(ctx, cfg.Port)
	})
}

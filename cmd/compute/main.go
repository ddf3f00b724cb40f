package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	computecmd "github.com/louisbranch/sheetwright/internal/cmd/compute"
	"github.com/louisbranch/sheetwright/internal/platform/config"
)

// main computes one character and prints the result.
func main() {
	cfg, err := computecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := computecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("compute character: %v", err)
	}
}

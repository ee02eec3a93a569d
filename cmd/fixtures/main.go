// Package main generates the credit funnel fixture CSVs: applications, loans,
// marketing touches and analytics events with consistent foreign keys.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/fixturegen/internal/cmd/fixtures"
	platformcmd "github.com/louisbranch/fixturegen/internal/platform/cmd"
	"github.com/louisbranch/fixturegen/internal/platform/config"
)

func main() {
	cfg, err := fixtures.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := platformcmd.RunWithTelemetry(ctx, cfg.RunOptions(), func(ctx context.Context) error {
		return fixtures.Run(ctx, cfg, os.Stdout, os.Stderr)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}

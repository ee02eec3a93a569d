package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/fixturegen/internal/platform/config"
	"github.com/louisbranch/fixturegen/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServiceFixtures names the fixture generator in startup telemetry.
const ServiceFixtures = "fixtures"

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// Telemetry describes the tracer provider installed around the run.
	Telemetry otel.Settings
	// ShutdownTimeout bounds the span flush after the run returns.
	// Zero or negative falls back to five seconds.
	ShutdownTimeout time.Duration
}

func (o RunOptions) shutdownTimeout() time.Duration {
	if o.ShutdownTimeout <= 0 {
		return defaultOTelShutdownTimeout
	}
	return o.ShutdownTimeout
}

// ParseConfig loads dotenv files and environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
//
// Flags must be registered on fs before the call, bound to fields of cfg,
// so their defaults are the values loaded from the environment.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string, register func(*flag.FlagSet, *T)) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	if register != nil && fs != nil {
		register(fs, cfg)
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures tracing from options and executes a command
// run. Pending spans are flushed once run returns.
func RunWithTelemetry(ctx context.Context, options RunOptions, run func(context.Context) error) error {
	service := strings.TrimSpace(options.Telemetry.ServiceName)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	settings := options.Telemetry
	settings.ServiceName = service
	shutdown, err := otel.Setup(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), options.shutdownTimeout())
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}

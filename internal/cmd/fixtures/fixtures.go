// Package fixtures wires the fixture generator command.
package fixtures

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/fixturegen/internal/fixtures/export"
	"github.com/louisbranch/fixturegen/internal/fixtures/export/sqlite"
	"github.com/louisbranch/fixturegen/internal/fixtures/generator"
	platformcmd "github.com/louisbranch/fixturegen/internal/platform/cmd"
	"github.com/louisbranch/fixturegen/internal/platform/logger"
	"github.com/louisbranch/fixturegen/internal/platform/otel"
)

// Config holds fixture command configuration.
type Config struct {
	OutputDir   string `env:"FIXTURES_OUTPUT_DIR" envDefault:"."`
	Seed        int64  `env:"FIXTURES_SEED" envDefault:"42"`
	SQLitePath  string `env:"FIXTURES_SQLITE_PATH"`
	Verbose     bool   `env:"FIXTURES_VERBOSE"`
	Environment string `env:"FIXTURES_ENV" envDefault:"development"`

	OTelEndpoint        string        `env:"FIXTURES_OTEL_ENDPOINT"`
	OTelEnabled         bool          `env:"FIXTURES_OTEL_ENABLED" envDefault:"true"`
	OTelShutdownTimeout time.Duration `env:"FIXTURES_OTEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// RunOptions describes the traced run for cfg. The resource carries the
// configured seed and output settings so exported spans can be matched to
// the files they produced; a zero seed is reported as configured and the
// drawn seed appears on the generation span.
func (cfg Config) RunOptions() platformcmd.RunOptions {
	return platformcmd.RunOptions{
		Telemetry: otel.Settings{
			ServiceName: platformcmd.ServiceFixtures,
			Endpoint:    cfg.OTelEndpoint,
			Disabled:    !cfg.OTelEnabled,
			Attributes: []attribute.KeyValue{
				attribute.Int64("fixtures.seed", cfg.Seed),
				attribute.String("fixtures.output_dir", cfg.OutputDir),
				attribute.Bool("fixtures.sqlite_mirror", strings.TrimSpace(cfg.SQLitePath) != ""),
				attribute.String("deployment.environment", cfg.Environment),
			},
		},
		ShutdownTimeout: cfg.OTelShutdownTimeout,
	}
}

// ParseConfig loads environment defaults and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args, registerFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for the CSV files")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "also mirror the tables into this SQLite database")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
}

// Run generates the fixture tables, writes them and prints a completion
// message naming the files.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	log := logger.New(cfg.Environment, cfg.Verbose, errOut)
	defer func() { _ = log.Sync() }()

	gen, err := generator.New(generator.Config{Seed: cfg.Seed, Logger: log})
	if err != nil {
		return err
	}
	log.Info("generating fixtures", zap.Int64("seed", gen.Seed()), zap.String("out", cfg.OutputDir))

	ds, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	if _, err := export.NewCSVWriter(cfg.OutputDir, log).WriteAll(ctx, ds); err != nil {
		return err
	}

	if path := strings.TrimSpace(cfg.SQLitePath); path != "" {
		if err := mirror(ctx, path, ds, log); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		printSummary(errOut, ds)
	}
	fmt.Fprintf(out, "Written %s\n", strings.Join(export.Files, ", "))
	return nil
}

func mirror(ctx context.Context, path string, ds generator.Dataset, log *zap.Logger) error {
	store, err := sqlite.Open(ctx, path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close sqlite mirror", zap.Error(err))
		}
	}()

	run, err := store.WriteDataset(ctx, ds)
	if err != nil {
		return fmt.Errorf("mirror to sqlite: %w", err)
	}
	log.Info("mirrored fixtures", zap.String("run_id", run.ID), zap.String("path", path))
	return nil
}

// printSummary reports row counts with locale digit grouping.
func printSummary(w io.Writer, ds generator.Dataset) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Seed %s\n", strconv.FormatInt(ds.Seed, 10))
	p.Fprintf(w, "  %-13s %6d rows\n", "applications", len(ds.Applications))
	p.Fprintf(w, "  %-13s %6d rows\n", "loans", len(ds.Loans))
	p.Fprintf(w, "  %-13s %6d rows\n", "marketing", len(ds.Marketing))
	p.Fprintf(w, "  %-13s %6d rows\n", "events", len(ds.Events))
}

// Package generator fabricates the credit funnel fixture tables.
//
// Applications are generated first with independent attributes. Loans,
// marketing touches and events then sample application ids and copy the
// referenced application's customer (and, for loans, its amount, term and
// vendor) through an ApplicationIndex, so every derived row stays
// consistent with the application it points at.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/fixturegen/internal/random"
)

const tracerName = "github.com/louisbranch/fixturegen/internal/fixtures/generator"

// Config holds configuration for the generator.
type Config struct {
	// Seed drives every draw. Zero requests a fresh random seed.
	Seed   int64
	Logger *zap.Logger
}

// DefaultConfig returns a Config with the fixed fixture seed.
func DefaultConfig() Config {
	return Config{Seed: random.DefaultSeed}
}

// Generator produces one Dataset from a single seeded random source.
type Generator struct {
	seed   int64
	rng    *rand.Rand
	logger *zap.Logger
	tracer trace.Tracer
}

// New creates a Generator, resolving a zero seed to a fresh one.
func New(cfg Config) (*Generator, error) {
	rng, seed, err := random.NewRNG(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed generator: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Seed == 0 {
		logger.Warn("using random seed", zap.Int64("seed", seed))
	}
	return NewWithRNG(rng, seed, logger), nil
}

// NewWithRNG creates a Generator drawing from rng. seed is recorded on the
// resulting Dataset only.
func NewWithRNG(rng *rand.Rand, seed int64, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		seed:   seed,
		rng:    rng,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate builds all four tables in order: applications, loans, marketing
// touches, events. The context is checked between tables only.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	ctx, span := g.tracer.Start(ctx, "fixtures.generate",
		trace.WithAttributes(attribute.Int64("fixtures.seed", g.seed)))
	defer span.End()

	ds, err := g.generate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Dataset{}, err
	}
	return ds, nil
}

func (g *Generator) generate(ctx context.Context) (Dataset, error) {
	ds := Dataset{Seed: g.seed}

	err := g.step(ctx, "applications", func() (int, error) {
		ds.Applications = g.GenerateApplications()
		return len(ds.Applications), nil
	})
	if err != nil {
		return Dataset{}, err
	}

	index, err := NewApplicationIndex(ds.Applications)
	if err != nil {
		return Dataset{}, fmt.Errorf("index applications: %w", err)
	}

	err = g.step(ctx, "loans", func() (int, error) {
		loans, err := g.GenerateLoans(index)
		ds.Loans = loans
		return len(loans), err
	})
	if err != nil {
		return Dataset{}, err
	}

	err = g.step(ctx, "marketing", func() (int, error) {
		touches, err := g.GenerateMarketing(index)
		ds.Marketing = touches
		return len(touches), err
	})
	if err != nil {
		return Dataset{}, err
	}

	err = g.step(ctx, "events", func() (int, error) {
		events, err := g.GenerateEvents(index)
		ds.Events = events
		return len(events), err
	})
	if err != nil {
		return Dataset{}, err
	}

	return ds, nil
}

// step runs one table generator inside its own span and logs the row count.
func (g *Generator) step(ctx context.Context, table string, run func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := g.tracer.Start(ctx, "fixtures.generate."+table)
	defer span.End()

	rows, err := run()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("generate %s: %w", table, err)
	}
	span.SetAttributes(attribute.Int("fixtures.rows", rows))
	g.logger.Info("generated table", zap.String("table", table), zap.Int("rows", rows))
	return nil
}

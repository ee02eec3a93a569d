// Package sqlite mirrors generated fixture tables into a SQLite database.
//
// Every dataset is stored under its own run id, so one database can hold
// several runs side by side. Absent diagnosis codes become SQL NULL.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/louisbranch/fixturegen/internal/fixtures/export"
	"github.com/louisbranch/fixturegen/internal/fixtures/export/sqlite/migrations"
	"github.com/louisbranch/fixturegen/internal/fixtures/generator"
	sqlitemigrate "github.com/louisbranch/fixturegen/internal/platform/storage/sqlitemigrate"
)

const tracerName = "github.com/louisbranch/fixturegen/internal/fixtures/export/sqlite"

// Run describes one dataset stored in the mirror.
type Run struct {
	ID               string
	Seed             int64
	GeneratedAt      time.Time
	ApplicationCount int
	LoanCount        int
	MarketingCount   int
	EventCount       int
}

// Store persists fixture datasets in SQLite.
type Store struct {
	sqlDB  *sql.DB
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// Open opens a SQLite fixture store and applies embedded migrations.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	applied, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		logger.Info("applied migration", zap.String("migration", name), zap.String("path", cleanPath))
	}
	return &Store{
		sqlDB:  sqlDB,
		logger: logger,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// WriteDataset stores ds under a new run id in a single transaction.
func (s *Store) WriteDataset(ctx context.Context, ds generator.Dataset) (run Run, err error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Run{}, fmt.Errorf("storage is not configured")
	}

	run = Run{
		ID:               s.newID(),
		Seed:             ds.Seed,
		GeneratedAt:      s.now().UTC(),
		ApplicationCount: len(ds.Applications),
		LoanCount:        len(ds.Loans),
		MarketingCount:   len(ds.Marketing),
		EventCount:       len(ds.Events),
	}

	ctx, span := s.tracer.Start(ctx, "fixtures.export.sqlite",
		trace.WithAttributes(attribute.String("fixtures.run_id", run.ID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO fixture_runs (
		   run_id, seed, generated_at,
		   application_count, loan_count, marketing_count, event_count
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.GeneratedAt.UnixMilli(),
		run.ApplicationCount, run.LoanCount, run.MarketingCount, run.EventCount,
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	if err = insertApplications(ctx, tx, run.ID, ds.Applications); err != nil {
		return Run{}, err
	}
	if err = insertLoans(ctx, tx, run.ID, ds.Loans); err != nil {
		return Run{}, err
	}
	if err = insertMarketing(ctx, tx, run.ID, ds.Marketing); err != nil {
		return Run{}, err
	}
	if err = insertEvents(ctx, tx, run.ID, ds.Events); err != nil {
		return Run{}, err
	}

	if err = tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("mirrored dataset", zap.String("run_id", run.ID), zap.Int64("seed", run.Seed))
	return run, nil
}

// GetRun returns the manifest of a stored run.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	if s == nil || s.sqlDB == nil {
		return Run{}, fmt.Errorf("storage is not configured")
	}
	var run Run
	var generatedAt int64
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT run_id, seed, generated_at,
		        application_count, loan_count, marketing_count, event_count
		   FROM fixture_runs WHERE run_id = ?`, runID)
	err := row.Scan(&run.ID, &run.Seed, &generatedAt,
		&run.ApplicationCount, &run.LoanCount, &run.MarketingCount, &run.EventCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	run.GeneratedAt = time.UnixMilli(generatedAt).UTC()
	return run, nil
}

func insertApplications(ctx context.Context, tx *sql.Tx, runID string, apps []generator.Application) error {
	return insertRows(ctx, tx, "applications",
		`INSERT INTO applications (
		   run_id, application_id, customer_id, created_at, product_type,
		   source_system, status, requested_amount, term_months, channel,
		   vendor, provider_id, service_line, icd10_code
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		apps,
		func(a generator.Application) []any {
			return []any{
				runID, a.ApplicationID, a.CustomerID, formatTimestamp(a.CreatedAt), a.ProductType,
				a.SourceSystem, a.Status, a.RequestedAmount, a.TermMonths, a.Channel,
				a.Vendor, a.ProviderID, a.ServiceLine, a.ICD10Code,
			}
		})
}

func insertLoans(ctx context.Context, tx *sql.Tx, runID string, loans []generator.Loan) error {
	return insertRows(ctx, tx, "loans",
		`INSERT INTO loans (
		   run_id, loan_id, application_id, customer_id, funded_at,
		   principal_amount, interest_rate, term_months, status, vendor
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loans,
		func(l generator.Loan) []any {
			return []any{
				runID, l.LoanID, l.ApplicationID, l.CustomerID, formatTimestamp(l.FundedAt),
				l.PrincipalAmount, l.InterestRate, l.TermMonths, l.Status, l.Vendor,
			}
		})
}

func insertMarketing(ctx context.Context, tx *sql.Tx, runID string, touches []generator.MarketingTouch) error {
	return insertRows(ctx, tx, "marketing_touches",
		`INSERT INTO marketing_touches (
		   run_id, marketing_touch_id, customer_id, application_id, campaign_id,
		   channel, vendor, click_timestamp, cost_usd
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		touches,
		func(m generator.MarketingTouch) []any {
			return []any{
				runID, m.MarketingTouchID, m.CustomerID, m.ApplicationID, m.CampaignID,
				m.Channel, m.Vendor, formatTimestamp(m.ClickTimestamp), m.CostUSD,
			}
		})
}

func insertEvents(ctx context.Context, tx *sql.Tx, runID string, events []generator.Event) error {
	return insertRows(ctx, tx, "events",
		`INSERT INTO events (
		   run_id, event_id, customer_id, session_id, application_id,
		   event_name, event_timestamp, source_system, device, url_path
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		events,
		func(e generator.Event) []any {
			return []any{
				runID, e.EventID, e.CustomerID, e.SessionID, e.ApplicationID,
				e.EventName, formatTimestamp(e.EventTimestamp), e.SourceSystem, e.Device, e.URLPath,
			}
		})
}

// insertRows executes one prepared insert per row.
func insertRows[T any](ctx context.Context, tx *sql.Tx, table, query string, rows []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, args(row)...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(export.TimestampLayout)
}

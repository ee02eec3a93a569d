// Package export serializes generated fixture tables.
package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/fixturegen/internal/fixtures/generator"
)

// Output file names, one per table.
const (
	ApplicationsFile = "raw_applications.csv"
	LoansFile        = "raw_loans.csv"
	MarketingFile    = "raw_marketing.csv"
	EventsFile       = "raw_events.csv"
)

// TimestampLayout is the serialized form of every timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

const tracerName = "github.com/louisbranch/fixturegen/internal/fixtures/export"

// Files lists the output files in the order WriteAll writes them.
var Files = []string{ApplicationsFile, LoansFile, MarketingFile, EventsFile}

// column renders one CSV column of a row type.
type column[T any] struct {
	header string
	value  func(T) string
}

var applicationColumns = []column[generator.Application]{
	{"application_id", func(a generator.Application) string { return a.ApplicationID }},
	{"customer_id", func(a generator.Application) string { return a.CustomerID }},
	{"created_at", func(a generator.Application) string { return formatTimestamp(a.CreatedAt) }},
	{"product_type", func(a generator.Application) string { return a.ProductType }},
	{"source_system", func(a generator.Application) string { return a.SourceSystem }},
	{"status", func(a generator.Application) string { return a.Status }},
	{"requested_amount", func(a generator.Application) string { return formatFloat(a.RequestedAmount) }},
	{"term_months", func(a generator.Application) string { return strconv.Itoa(a.TermMonths) }},
	{"channel", func(a generator.Application) string { return a.Channel }},
	{"vendor", func(a generator.Application) string { return a.Vendor }},
	{"provider_id", func(a generator.Application) string { return a.ProviderID }},
	{"service_line", func(a generator.Application) string { return a.ServiceLine }},
	{"icd10_code", func(a generator.Application) string { return formatNullString(a.ICD10Code) }},
}

var loanColumns = []column[generator.Loan]{
	{"loan_id", func(l generator.Loan) string { return l.LoanID }},
	{"application_id", func(l generator.Loan) string { return l.ApplicationID }},
	{"customer_id", func(l generator.Loan) string { return l.CustomerID }},
	{"funded_at", func(l generator.Loan) string { return formatTimestamp(l.FundedAt) }},
	{"principal_amount", func(l generator.Loan) string { return formatFloat(l.PrincipalAmount) }},
	{"interest_rate", func(l generator.Loan) string { return formatFloat(l.InterestRate) }},
	{"term_months", func(l generator.Loan) string { return strconv.Itoa(l.TermMonths) }},
	{"status", func(l generator.Loan) string { return l.Status }},
	{"vendor", func(l generator.Loan) string { return l.Vendor }},
}

var marketingColumns = []column[generator.MarketingTouch]{
	{"marketing_touch_id", func(m generator.MarketingTouch) string { return m.MarketingTouchID }},
	{"customer_id", func(m generator.MarketingTouch) string { return m.CustomerID }},
	{"application_id", func(m generator.MarketingTouch) string { return m.ApplicationID }},
	{"campaign_id", func(m generator.MarketingTouch) string { return m.CampaignID }},
	{"channel", func(m generator.MarketingTouch) string { return m.Channel }},
	{"vendor", func(m generator.MarketingTouch) string { return m.Vendor }},
	{"click_timestamp", func(m generator.MarketingTouch) string { return formatTimestamp(m.ClickTimestamp) }},
	{"cost_usd", func(m generator.MarketingTouch) string { return formatFloat(m.CostUSD) }},
}

var eventHeader = []string{
	"event_id", "customer_id", "session_id", "application_id",
	"event_name", "event_timestamp", "source_system", "device", "url_path",
}

// CSVWriter writes fixture tables as comma-separated files with a header row.
type CSVWriter struct {
	dir    string
	logger *zap.Logger
	tracer trace.Tracer
}

// NewCSVWriter returns a writer placing files in dir. An empty dir means the
// working directory.
func NewCSVWriter(dir string, logger *zap.Logger) *CSVWriter {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVWriter{dir: dir, logger: logger, tracer: otel.Tracer(tracerName)}
}

// Path returns where the named output file is written.
func (w *CSVWriter) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteAll writes the four tables in Files order and returns their paths.
// It stops at the first failure; files already written are left in place.
func (w *CSVWriter) WriteAll(ctx context.Context, ds generator.Dataset) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	writes := []struct {
		name  string
		rows  int
		write func(string) error
	}{
		{ApplicationsFile, len(ds.Applications), func(p string) error { return WriteApplications(p, ds.Applications) }},
		{LoansFile, len(ds.Loans), func(p string) error { return WriteLoans(p, ds.Loans) }},
		{MarketingFile, len(ds.Marketing), func(p string) error { return WriteMarketing(p, ds.Marketing) }},
		{EventsFile, len(ds.Events), func(p string) error { return WriteEvents(p, ds.Events) }},
	}

	paths := make([]string, 0, len(writes))
	for _, wr := range writes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := w.Path(wr.name)
		if err := w.traced(ctx, path, wr.rows, wr.write); err != nil {
			return paths, fmt.Errorf("write %s: %w", wr.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *CSVWriter) traced(ctx context.Context, path string, rows int, write func(string) error) error {
	_, span := w.tracer.Start(ctx, "fixtures.export.csv",
		trace.WithAttributes(
			attribute.String("fixtures.path", path),
			attribute.Int("fixtures.rows", rows),
		))
	defer span.End()

	if err := write(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	w.logger.Info("wrote file", zap.String("path", path), zap.Int("rows", rows))
	return nil
}

// WriteApplications writes the application table to path.
func WriteApplications(path string, apps []generator.Application) error {
	return writeTable(path, applicationColumns, apps)
}

// WriteLoans writes the loan table to path.
func WriteLoans(path string, loans []generator.Loan) error {
	return writeTable(path, loanColumns, loans)
}

// WriteMarketing writes the marketing touch table to path.
func WriteMarketing(path string, touches []generator.MarketingTouch) error {
	return writeTable(path, marketingColumns, touches)
}

// WriteEvents writes the event table to path, building each record field by
// field. The output matches the column-driven tables byte for byte.
func WriteEvents(path string, events []generator.Event) error {
	return withCSVFile(path, func(cw *csv.Writer) error {
		if err := cw.Write(eventHeader); err != nil {
			return err
		}
		for _, ev := range events {
			record := []string{
				ev.EventID,
				ev.CustomerID,
				ev.SessionID,
				ev.ApplicationID,
				ev.EventName,
				formatTimestamp(ev.EventTimestamp),
				ev.SourceSystem,
				ev.Device,
				ev.URLPath,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTable[T any](path string, columns []column[T], rows []T) error {
	return withCSVFile(path, func(cw *csv.Writer) error {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i] = c.header
		}
		if err := cw.Write(record); err != nil {
			return err
		}
		for _, row := range rows {
			for i, c := range columns {
				record[i] = c.value(row)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// withCSVFile creates path, hands a CSV writer to write, then flushes and
// closes the file, reporting the first error seen.
func withCSVFile(path string, write func(*csv.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	cw := csv.NewWriter(f)
	if err := write(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// formatFloat renders the shortest decimal that round-trips, so 1234.5 stays
// "1234.5" rather than "1234.50".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatNullString renders an absent value as the empty field.
func formatNullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

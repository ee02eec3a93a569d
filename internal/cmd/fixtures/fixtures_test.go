package fixtures

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/louisbranch/fixturegen/internal/fixtures/export"
	platformcmd "github.com/louisbranch/fixturegen/internal/platform/cmd"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FIXTURES_OUTPUT_DIR", "FIXTURES_SEED", "FIXTURES_SQLITE_PATH",
		"FIXTURES_VERBOSE", "FIXTURES_ENV", "FIXTURES_OTEL_ENDPOINT",
		"FIXTURES_OTEL_ENABLED", "FIXTURES_OTEL_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	clearEnv(t)

	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)

	assert.Equal(t, Config{
		OutputDir:           ".",
		Seed:                42,
		Environment:         "development",
		OTelEnabled:         true,
		OTelShutdownTimeout: 5 * time.Second,
	}, cfg)
}

func TestParseConfigReadsTelemetryEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIXTURES_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("FIXTURES_OTEL_ENABLED", "false")
	t.Setenv("FIXTURES_OTEL_SHUTDOWN_TIMEOUT", "750ms")

	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 750*time.Millisecond, cfg.OTelShutdownTimeout)
}

func TestConfigRunOptionsDescribesRun(t *testing.T) {
	cfg := Config{
		OutputDir:           "fixtures-out",
		Seed:                7,
		SQLitePath:          "mirror.db",
		Environment:         "production",
		OTelEndpoint:        "http://collector:4318",
		OTelEnabled:         true,
		OTelShutdownTimeout: 2 * time.Second,
	}

	options := cfg.RunOptions()

	assert.Equal(t, platformcmd.ServiceFixtures, options.Telemetry.ServiceName)
	assert.Equal(t, "http://collector:4318", options.Telemetry.Endpoint)
	assert.True(t, options.Telemetry.Enabled())
	assert.Equal(t, 2*time.Second, options.ShutdownTimeout)
	assert.Equal(t, []attribute.KeyValue{
		attribute.Int64("fixtures.seed", 7),
		attribute.String("fixtures.output_dir", "fixtures-out"),
		attribute.Bool("fixtures.sqlite_mirror", true),
		attribute.String("deployment.environment", "production"),
	}, options.Telemetry.Attributes)
}

func TestConfigRunOptionsDisabledTelemetry(t *testing.T) {
	options := Config{OTelEndpoint: "http://collector:4318", OTelEnabled: false}.RunOptions()
	assert.False(t, options.Telemetry.Enabled())

	options = Config{OTelEnabled: true}.RunOptions()
	assert.False(t, options.Telemetry.Enabled())
	assert.Contains(t, options.Telemetry.Attributes, attribute.Bool("fixtures.sqlite_mirror", false))
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIXTURES_OUTPUT_DIR", "from-env")
	t.Setenv("FIXTURES_SEED", "7")

	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "9", "-sqlite", "mirror.db", "-v"})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "mirror.db", cfg.SQLitePath)
	assert.True(t, cfg.Verbose)
}

func TestParseConfigRejectsBadSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIXTURES_SEED", "forty-two")

	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	_, err := ParseConfig(fs, nil)
	assert.ErrorContains(t, err, "parse env:")
}

func TestRunWritesFilesAndCompletionMessage(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer

	err := Run(context.Background(), Config{OutputDir: dir, Seed: 42}, &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t, "Written raw_applications.csv, raw_loans.csv, raw_marketing.csv, raw_events.csv\n", out.String())
	assert.Empty(t, errOut.String())
	for _, name := range export.Files {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestRunFirstApplicationRowIsStable(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	require.NoError(t, Run(context.Background(), Config{OutputDir: first, Seed: 42}, nil, nil))
	require.NoError(t, Run(context.Background(), Config{OutputDir: second, Seed: 42}, nil, nil))

	a, err := os.ReadFile(filepath.Join(first, export.ApplicationsFile))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, export.ApplicationsFile))
	require.NoError(t, err)

	assert.Equal(t, firstDataRow(a), firstDataRow(b))
	assert.True(t, bytes.HasPrefix(firstDataRow(a), []byte("APP_00001,")))
}

func TestRunVerbosePrintsSummary(t *testing.T) {
	var out, errOut bytes.Buffer

	err := Run(context.Background(), Config{OutputDir: t.TempDir(), Seed: 42, Verbose: true}, &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, errOut.String(), "generated table")
	assert.Contains(t, errOut.String(), "Seed 42")
	assert.Contains(t, errOut.String(), "4,000 rows")
}

func TestRunMirrorsToSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fixtures.db")

	err := Run(context.Background(), Config{OutputDir: dir, Seed: 42, SQLitePath: dbPath}, nil, nil)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var runs, loans int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM fixture_runs WHERE seed = 42").Scan(&runs))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM loans").Scan(&loans))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 250, loans)
}

func TestRunFailsOnUnwritableOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	var out bytes.Buffer

	err := Run(context.Background(), Config{OutputDir: filepath.Join(blocker, "out"), Seed: 42}, &out, nil)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func firstDataRow(data []byte) []byte {
	lines := bytes.SplitN(data, []byte("\n"), 3)
	if len(lines) < 2 {
		return nil
	}
	return lines[1]
}

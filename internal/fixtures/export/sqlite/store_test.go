package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louisbranch/fixturegen/internal/fixtures/generator"
	"github.com/louisbranch/fixturegen/internal/random"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "fixtures.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func generateDataset(t *testing.T) generator.Dataset {
	t.Helper()
	gen, err := generator.New(generator.DefaultConfig())
	require.NoError(t, err)
	ds, err := gen.Generate(context.Background())
	require.NoError(t, err)
	return ds
}

func countRows(t *testing.T, store *Store, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, store.sqlDB.QueryRow(query, args...).Scan(&n))
	return n
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ", nil)
	assert.Error(t, err)
}

func TestWriteDatasetStoresAllTables(t *testing.T) {
	store := openTempStore(t)
	now := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.newID = func() string { return "run-1" }

	ds := generateDataset(t)
	run, err := store.WriteDataset(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, Run{
		ID:               "run-1",
		Seed:             random.DefaultSeed,
		GeneratedAt:      now,
		ApplicationCount: 500,
		LoanCount:        250,
		MarketingCount:   800,
		EventCount:       4000,
	}, run)

	got, err := store.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	assert.Equal(t, 500, countRows(t, store, "SELECT COUNT(*) FROM applications WHERE run_id = ?", "run-1"))
	assert.Equal(t, 250, countRows(t, store, "SELECT COUNT(*) FROM loans WHERE run_id = ?", "run-1"))
	assert.Equal(t, 800, countRows(t, store, "SELECT COUNT(*) FROM marketing_touches WHERE run_id = ?", "run-1"))
	assert.Equal(t, 4000, countRows(t, store, "SELECT COUNT(*) FROM events WHERE run_id = ?", "run-1"))

	var missing int
	for _, app := range ds.Applications {
		if !app.ICD10Code.Valid {
			missing++
		}
	}
	assert.Equal(t, missing, countRows(t, store, "SELECT COUNT(*) FROM applications WHERE icd10_code IS NULL"))
}

func TestWriteDatasetKeepsCustomerJoinConsistent(t *testing.T) {
	store := openTempStore(t)
	run, err := store.WriteDataset(context.Background(), generateDataset(t))
	require.NoError(t, err)

	for _, table := range []string{"loans", "marketing_touches", "events"} {
		mismatched := countRows(t, store,
			`SELECT COUNT(*) FROM `+table+` d
			   JOIN applications a ON a.run_id = d.run_id AND a.application_id = d.application_id
			  WHERE d.run_id = ? AND a.customer_id <> d.customer_id`, run.ID)
		assert.Zero(t, mismatched, table)
	}
}

func TestWriteDatasetKeepsRunsApart(t *testing.T) {
	store := openTempStore(t)
	ds := generateDataset(t)

	first, err := store.WriteDataset(context.Background(), ds)
	require.NoError(t, err)
	second, err := store.WriteDataset(context.Background(), ds)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1000, countRows(t, store, "SELECT COUNT(*) FROM applications"))
}

func TestWriteDatasetRollsBackOnDuplicateRun(t *testing.T) {
	store := openTempStore(t)
	store.newID = func() string { return "fixed" }
	ds := generateDataset(t)

	_, err := store.WriteDataset(context.Background(), ds)
	require.NoError(t, err)
	_, err = store.WriteDataset(context.Background(), ds)
	require.Error(t, err)

	assert.Equal(t, 1, countRows(t, store, "SELECT COUNT(*) FROM fixture_runs"))
	assert.Equal(t, 500, countRows(t, store, "SELECT COUNT(*) FROM applications"))
}

func TestGetRunNotFound(t *testing.T) {
	store := openTempStore(t)
	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.db")
	first, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

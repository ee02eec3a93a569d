package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Seed int64 `env:"FIXTURES_TEST_SEED" envDefault:"42"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("FIXTURES_TEST_SEED", "not-an-int")

	assert.ErrorContains(t, ParseEnv(&cfg), "parse env:")
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")
	assert.NoError(t, LoadDotEnv(missing))
}

func TestLoadDotEnvSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FIXTURES_TEST_DOTENV_SEED=7\n"), 0o600))
	// Register cleanup for a variable godotenv sets directly.
	t.Setenv("FIXTURES_TEST_DOTENV_SEED", "")
	os.Unsetenv("FIXTURES_TEST_DOTENV_SEED")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "7", os.Getenv("FIXTURES_TEST_DOTENV_SEED"))
}

func TestLoadDotEnvKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FIXTURES_TEST_DOTENV_DIR=from-file\n"), 0o600))
	t.Setenv("FIXTURES_TEST_DOTENV_DIR", "from-env")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("FIXTURES_TEST_DOTENV_DIR"))
}

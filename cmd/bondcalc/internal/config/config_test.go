package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/germanbond/rates"
)

// isolate points HOME at an empty directory so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 0, cfg.Batch.Workers)
	assert.Equal(t, int32(2), cfg.Export.Decimals)
	assert.False(t, cfg.Export.Extended)

	s := cfg.SolverSettings()
	assert.Equal(t, rates.DefaultSolverConfig, s)
}

func TestLoad_HomeFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, ".bondcalc/bondcalc.yaml", `
log:
  level: debug
batch:
  workers: 8
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", `
log:
  level: warn
  pretty: true
solver:
  tolerance: 1.0e-8
  max_iterations: 50
  price_tolerance: 0.001
export:
  decimals: 4
  extended: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	s := cfg.SolverSettings()
	assert.Equal(t, 1e-8, s.Tolerance)
	assert.Equal(t, 50, s.MaxIterations)
	assert.Equal(t, 0.001, s.PriceTolerance)
	assert.Equal(t, rates.DefaultSolverConfig.RateTolerance, s.RateTolerance)
	assert.Equal(t, rates.DefaultSolverConfig.DerivativeThreshold, s.DerivativeThreshold)

	opts := cfg.ExportOptions()
	assert.Equal(t, int32(4), opts.Decimals)
	assert.True(t, opts.Extended)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "bondcalc.yaml", "batch:\n  workers: 2\n")
	t.Setenv("BONDCALC_BATCH_WORKERS", "16")
	t.Setenv("BONDCALC_SOLVER_UPPER_BOUND", "3.5")
	t.Setenv("BONDCALC_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Batch.Workers)
	assert.Equal(t, 3.5, cfg.Solver.UpperBound)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	tests := map[string]string{
		"log level":       "log:\n  level: verbose\n",
		"tolerance":       "solver:\n  tolerance: -1\n",
		"iterations":      "solver:\n  max_iterations: -5\n",
		"price tolerance": "solver:\n  price_tolerance: -0.1\n",
		"workers":         "batch:\n  workers: -1\n",
		"decimals":        "export:\n  decimals: 20\n",
	}
	for name, body := range tests {
		path := writeFile(t, t.TempDir(), "bondcalc.yaml", body)
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

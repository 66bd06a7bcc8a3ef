package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("towermap", flag.ContinueOnError)
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg := LoadFrom(newFlagSet(), nil)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 40.730610, cfg.Latitude)
	assert.Equal(t, -73.935242, cfg.Longitude)
	assert.Equal(t, []string{"AT&T", "T-Mobile", "Verizon"}, cfg.Carriers)
	assert.Equal(t, 5, cfg.ProgressStep)
	assert.Equal(t, 100*time.Millisecond, cfg.ProgressInterval)
	assert.Zero(t, cfg.BackendTimeout)
	assert.False(t, cfg.MockMode)
}

func TestLoadFrom_EnvThenFlags(t *testing.T) {
	t.Setenv("TOWERMAP_ADDR", ":9000")
	t.Setenv("TOWERMAP_BACKEND_URL", "http://towers.internal")
	t.Setenv("TOWERMAP_CARRIERS", " Verizon , ,Sprint")
	t.Setenv("TOWERMAP_PROGRESS_INTERVAL_MS", "50")
	t.Setenv("TOWERMAP_MOCK", "true")
	t.Setenv("TOWERMAP_LAT", "not-a-number")

	cfg := LoadFrom(newFlagSet(), []string{"-addr", ":7000", "-backend-timeout", "2500", "-origins", "http://a,http://b"})

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "http://towers.internal", cfg.BackendURL)
	assert.Equal(t, []string{"Verizon", "Sprint"}, cfg.Carriers)
	assert.Equal(t, 50*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, 2500*time.Millisecond, cfg.BackendTimeout)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MockMode)
	assert.Equal(t, 40.730610, cfg.Latitude)
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOWERMAP_TEST_FROM_FILE=file\nTOWERMAP_TEST_PRESET=file\n"), 0o600))
	t.Setenv("TOWERMAP_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("TOWERMAP_TEST_FROM_FILE") })

	loadEnvFile(path)
	loadEnvFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "file", os.Getenv("TOWERMAP_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("TOWERMAP_TEST_PRESET"))
}

func TestValidate(t *testing.T) {
	cfg := LoadFrom(newFlagSet(), nil)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend URL is required")

	cfg.MockMode = true
	assert.NoError(t, cfg.Validate())

	cfg.ProgressStep = 0
	cfg.Carriers = nil
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress step")
	assert.Contains(t, err.Error(), "carrier")
}

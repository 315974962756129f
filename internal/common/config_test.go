package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, []string{"EUR", "USD"}, cfg.Rates.Currencies)
	assert.Equal(t, 4*time.Second, cfg.Rates.GetTimeout())
	assert.Equal(t, 5*time.Minute, cfg.Rates.GetCacheTTL())
	assert.True(t, cfg.Dashboard.IncludePending)
	assert.False(t, cfg.Dashboard.IncludeResidences)
}

func TestConfig_DurationFallback(t *testing.T) {
	c := RatesConfig{Timeout: "soon", CacheTTL: "-1s"}
	assert.Equal(t, 4*time.Second, c.GetTimeout())
	assert.Equal(t, 5*time.Minute, c.GetCacheTTL())
}

func TestLoadConfig_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.toml")
	second := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(first, []byte(`
currency = "usd"

[rates]
timeout = "2s"
currencies = ["EUR", "USD", "GBP"]
`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`
[dashboard]
include_pending = false

[rates]
timeout = "3s"
`), 0o644))

	cfg, err := LoadConfig(first, filepath.Join(dir, "missing.toml"), second)
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 3*time.Second, cfg.Rates.GetTimeout())
	assert.Equal(t, []string{"EUR", "USD", "GBP"}, cfg.Rates.Currencies)
	assert.False(t, cfg.Dashboard.IncludePending)
	assert.True(t, cfg.Dashboard.IncludeRealEstate, "untouched keys keep their default")
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("currency = "), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NW_CURRENCY", "gbp")
	t.Setenv("NW_LOG_LEVEL", "debug")
	t.Setenv("NW_RATES_URL", "http://localhost:1234")
	t.Setenv("NW_RATES_STORAGE", "/tmp/rates.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:1234", cfg.Rates.BaseURL)
	assert.Equal(t, "/tmp/rates.json", cfg.Rates.StoragePath)
}

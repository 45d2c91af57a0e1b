package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("CHARTCALC_WORKERS")
	os.Unsetenv("CHARTCALC_METRICS_ADDR")
	os.Unsetenv("CHARTCALC_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHARTCALC_WORKERS", "8")
	t.Setenv("CHARTCALC_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIndicatorSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	yamlText := `indicators:
  - type: SMA
    window: 50
  - type: MACD
  - type: FORMULA
    name: MOMENTUM
    formula: Close.diff().rolling(10).mean()
`
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0o644))

	set, err := LoadIndicatorSet(path)
	require.NoError(t, err)
	require.Len(t, set.Indicators, 3)
	assert.Equal(t, "SMA", set.Indicators[0].Type)
	assert.Equal(t, 50, set.Indicators[0].Window)
	assert.Equal(t, "MOMENTUM", set.Indicators[2].Name)
	assert.Equal(t, "Close.diff().rolling(10).mean()", set.Indicators[2].Formula)
}

func TestLoadIndicatorSet_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indicators: []\n"), 0o644))

	_, err := LoadIndicatorSet(path)
	require.Error(t, err)
}

func TestLoadIndicatorSet_Missing(t *testing.T) {
	_, err := LoadIndicatorSet(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

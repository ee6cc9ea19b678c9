package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values_test.yaml"), []byte(body), 0o644))
	t.Setenv(configDirENV, dir)
	t.Setenv(configFilePathENV, "values_test.yaml")
}

func TestNewConfig_DefaultsAndEnv(t *testing.T) {
	writeConfig(t, `
service:
  admin_port: 9090
scheduler:
  refresh_interval: 30s
  scan_interval: 3m
`)
	t.Setenv(databaseDSN, "postgres://u:p@localhost:5432/bt")
	t.Setenv(apiKeyENV, "key")
	t.Setenv(apiSecretENV, "secret")
	t.Setenv(chatTelegramENV, "42")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.AdminPort)
	assert.Equal(t, "info", cfg.Service.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.RefreshInterval)
	assert.Equal(t, 3*time.Minute, cfg.Scheduler.ScanInterval)
	assert.Equal(t, "https://api.binance.com", cfg.Exchange.BaseURL)
	assert.Equal(t, "postgres://u:p@localhost:5432/bt", cfg.DB)
	assert.Equal(t, "key", cfg.Exchange.APIKey)
	assert.Equal(t, "secret", cfg.Exchange.APISecret)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func TestNewConfig_ScanFasterThanRefresh(t *testing.T) {
	writeConfig(t, `
scheduler:
  refresh_interval: 5m
  scan_interval: 1m
`)
	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNewConfig_ScanNotMultipleOfRefresh(t *testing.T) {
	writeConfig(t, `
scheduler:
  refresh_interval: 1m
  scan_interval: 150s
`)
	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a multiple of refresh_interval 1m0s")
}

func TestNewConfig_ScanMultipleOfRefresh(t *testing.T) {
	writeConfig(t, `
scheduler:
  refresh_interval: 1m
  scan_interval: 3m
`)
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute, cfg.Scheduler.ScanInterval)
}

func TestNewConfig_MissingFile(t *testing.T) {
	t.Setenv(configDirENV, t.TempDir())
	t.Setenv(configFilePathENV, "nope.yaml")
	_, err := NewConfig()
	require.Error(t, err)
}

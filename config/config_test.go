package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 15, cfg.Allocation.MaxShares)
	assert.Equal(t, -0.1, cfg.Allocation.SellThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Allocation.ShrinkDelay)
	assert.Equal(t, "score", cfg.Allocation.AggregateBasis)
	assert.Equal(t, 20, cfg.Discovery.Count)
	assert.Equal(t, "https://api.marketaux.com", cfg.Marketaux.BaseURL)
	assert.False(t, cfg.DB.Enabled)
	assert.Empty(t, cfg.Scheduler.Cron)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
allocation:
  max_shares: 10
  shrink_delay: 0s
  aggregate_basis: shares
scheduler:
  cron: "30 13 * * 1-5"
  budget: 2500
  extra_tickers: [AAPL, MSFT]
`)
	t.Setenv("MARKETAUX_API_TOKEN", "from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Allocation.MaxShares)
	assert.Zero(t, cfg.Allocation.ShrinkDelay)
	assert.Equal(t, "shares", cfg.Allocation.AggregateBasis)
	assert.Equal(t, 2500.0, cfg.Scheduler.Budget)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Scheduler.ExtraTickers)
	assert.Equal(t, "from-env", cfg.Marketaux.APIToken)
	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown aggregate basis", body: "allocation:\n  aggregate_basis: median\n"},
		{name: "positive sell threshold", body: "allocation:\n  sell_threshold: 0.2\n"},
		{name: "zero max shares", body: "allocation:\n  max_shares: 0\n"},
		{name: "bad log encoding", body: "logger:\n  encoding: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

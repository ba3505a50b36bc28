package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9108", cfg.App.MetricsAddr)
	assert.Equal(t, ".NS", cfg.DataSource.DefaultSuffix)
	assert.Equal(t, "^NSEI", cfg.DataSource.SymbolMap["NIFTY"])
	assert.Equal(t, 300, cfg.DataSource.HistoryDays)
	assert.Equal(t, 10, cfg.Signal.RSIPeriod)
	assert.Equal(t, 20, cfg.Signal.OBVLookback, "default applied")
	assert.Equal(t, []string{"RELIANCE", "TCS"}, cfg.Watchlist)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Redis.TTLMinutes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 250, cfg.DataSource.HistoryDays)
	assert.Equal(t, 14, cfg.Signal.RSIPeriod)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/signaldesk.db", cfg.Database.DSN)
	assert.Equal(t, "0 30 16 * * 1-5", cfg.Schedule.DailyCron)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("WATCHLIST", "aapl, msft,,nvda")
	t.Setenv("OBV_LOOKBACK", "15")
	t.Setenv("DB_DRIVER", "none")

	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, cfg.Watchlist)
	assert.Equal(t, 15, cfg.Signal.OBVLookback)
	assert.Equal(t, "none", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join("testdata", "config.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := valid()
	cfg.Telegram.BotToken = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Watchlist = nil
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.DataSource.HistoryDays = 15
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.DSN = ""
	assert.Error(t, cfg.Validate())
}

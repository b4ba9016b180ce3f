package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theCalcaholic/findus/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotEmpty(t, cfg.DatabaseURL, "expected default database URL to be set")
	require.Empty(t, cfg.RedisURL, "expected redis to be disabled by default")
	require.Equal(t, 7, cfg.ImportLookbackDays)
	require.Equal(t, 15*time.Minute, cfg.SeriesCacheTTL)
	require.Equal(t, "balances.html", cfg.ChartOut)
	require.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("IMPORT_LOOKBACK_DAYS", "30")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("CHART_OUT", "/tmp/out.html")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "postgres://example", cfg.DatabaseURL)
	require.Equal(t, "redis://example", cfg.RedisURL)
	require.Equal(t, 30, cfg.ImportLookbackDays)
	require.Equal(t, 45*time.Second, cfg.DatabaseTimeout)
	require.Equal(t, "/tmp/out.html", cfg.ChartOut)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOCAL_ONLY", "WORKERS", "CACHE_SIZE", "LOG_LEVEL", "LOG_FORMAT",
		"BIGQUERY_PROJECT", "BIGQUERY_DATASET", "BIGQUERY_TABLE", "BIGQUERY_LOCATION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.Hostname)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 4096, cfg.CacheSize)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.False(t, cfg.BigQuery.Enabled())
	require.Equal(t, "springs", cfg.BigQuery.Dataset)
	require.Equal(t, "condition_records", cfg.BigQuery.Table)
	require.Equal(t, "US", cfg.BigQuery.Location)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOCAL_ONLY", "true")
	t.Setenv("WORKERS", "2")
	t.Setenv("CACHE_SIZE", "16")
	t.Setenv("BIGQUERY_PROJECT", "hot-springs")
	t.Setenv("BIGQUERY_TABLE", "records")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "127.0.0.1", cfg.Hostname)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, 16, cfg.CacheSize)
	require.True(t, cfg.BigQuery.Enabled())
	require.Equal(t, "hot-springs.springs.records", cfg.BigQuery.TableRef())
}

func TestLoad_InvalidNumbers(t *testing.T) {
	for _, tc := range []struct {
		key, value string
	}{
		{"WORKERS", "many"},
		{"WORKERS", "0"},
		{"CACHE_SIZE", "-5"},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

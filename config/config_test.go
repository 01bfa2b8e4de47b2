package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/querybuilder/config"
)

func setEnv(t *testing.T, variables map[string]string) {
	t.Helper()
	for name, value := range variables {
		t.Setenv(name, value)
	}
}

func TestReadFromEnvDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"QUERY_API_BASE_URL": "http://localhost:8000",
		"QUERY_API_TIMEOUT":  "",
		"PRODUCTION":         "",
		"LOG_LEVEL":          "",
		"SNAPSHOT_STORE":     "",
	})

	cfg, err := config.ReadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.QueryAPI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.QueryAPI.Timeout)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, config.SnapshotStoreNone, cfg.SnapshotStore)
}

func TestReadFromEnvRequiresBaseURL(t *testing.T) {
	setEnv(t, map[string]string{"QUERY_API_BASE_URL": ""})

	_, err := config.ReadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY_API_BASE_URL")
}

func TestReadFromEnvClickHouse(t *testing.T) {
	setEnv(t, map[string]string{
		"QUERY_API_BASE_URL":       "http://localhost:8000",
		"QUERY_API_TIMEOUT":        "5s",
		"LOG_LEVEL":                "DEBUG",
		"SNAPSHOT_STORE":           "clickhouse",
		"CLICKHOUSE_ADDRESS":       "localhost:9000",
		"CLICKHOUSE_DB_NAME":       "analise",
		"CLICKHOUSE_USERNAME":      "default",
		"CLICKHOUSE_PASSWORD":      "senha",
		"CLICKHOUSE_DEBUG_ENABLED": "true",
	})

	cfg, err := config.ReadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.QueryAPI.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, config.ClickHouse{
		Address:      "localhost:9000",
		DatabaseName: "analise",
		Username:     "default",
		Password:     "senha",
		Debug:        true,
	}, cfg.ClickHouse)
}

func TestReadFromEnvElasticsearchRequiresAddress(t *testing.T) {
	setEnv(t, map[string]string{
		"QUERY_API_BASE_URL":    "http://localhost:8000",
		"SNAPSHOT_STORE":        "elasticsearch",
		"ELASTICSEARCH_ADDRESS": "",
	})

	_, err := config.ReadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELASTICSEARCH_ADDRESS")
}

func TestReadFromEnvRejectsUnknownSnapshotStore(t *testing.T) {
	setEnv(t, map[string]string{
		"QUERY_API_BASE_URL": "http://localhost:8000",
		"SNAPSHOT_STORE":     "postgres",
	})

	_, err := config.ReadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

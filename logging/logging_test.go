package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/querybuilder/logging"
)

func TestProductionHandlerWritesJSON(t *testing.T) {
	var output strings.Builder
	logger := slog.New(logging.NewHandler(&output, true, slog.LevelInfo))

	logger.Info("query API responded", slog.Int("status", 200))
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "query API responded", entry["msg"])
	assert.Equal(t, 200.0, entry["status"])
}

func TestDevelopmentHandlerRespectsLevel(t *testing.T) {
	handler := logging.NewHandler(&strings.Builder{}, false, slog.LevelWarn)

	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

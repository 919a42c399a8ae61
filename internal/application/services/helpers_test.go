package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
)

// testLogger builds a logger that stays quiet below error level and never
// touches the filesystem.
func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	config := logging.DefaultLoggerConfig()
	config.OutputToFile = false
	config.OutputToConsole = false
	config.DefaultLevel = slog.LevelError

	logger, err := logging.NewChanneledLogger(config)
	require.NoError(t, err)
	return logger
}

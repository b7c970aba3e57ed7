package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tonesandtones/httpstatus/util/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}

	for lvl, expected := range tests {
		t.Run(lvl, func(t *testing.T) {
			actual := logging.ParseLevel(lvl, zapcore.InfoLevel)
			assert.Equal(t, expected, actual.Level())
		})
	}
}

func TestNew_Level(t *testing.T) {
	log, err := logging.New(logging.Options{
		Level:  "warn",
		Format: logging.FormatDevelopment,
	})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_DevelopmentStacktrace(t *testing.T) {
	warn := func(disable bool) string {
		file := filepath.Join(t.TempDir(), "log")

		config := logging.NewConfig(logging.Options{
			Format:            logging.FormatDevelopment,
			DisableStacktrace: disable,
		})
		config.OutputPaths = []string{file}

		log, err := config.Build()
		require.NoError(t, err)

		log.Warn("request")
		_ = log.Sync()

		out, err := os.ReadFile(file)
		require.NoError(t, err)

		return string(out)
	}

	assert.Contains(t, warn(false), "testing.tRunner")
	assert.NotContains(t, warn(true), "testing.tRunner")
}

func TestLoggerFromContext(t *testing.T) {
	_, err := logging.LoggerFromContext(context.Background())
	assert.ErrorIs(t, err, logging.ErrNoLoggerInContext)

	log := zap.NewNop()
	ctx := logging.ContextWithLogger(context.Background(), log)

	actual, err := logging.LoggerFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, log, actual)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonesandtones/httpstatus/config"
	"github.com/tonesandtones/httpstatus/util/conf"
)

func parse(t *testing.T, file string) (config.Config, error) {
	t.Helper()

	schema, err := config.NewSchema()
	require.NoError(t, err)

	return conf.Parse[config.Config](conf.ParseOptions{
		Defaults: config.DefaultConfig,
		FileName: file,
		Schema:   schema,
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := parse(t, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.HttpLevel)
	assert.True(t, cfg.Status.RootAnyMethod)
}

func TestHttpLevelOverrideFromEnv(t *testing.T) {
	t.Setenv("LOGGING__HTTP_LEVEL", "warn")

	cfg, err := parse(t, "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.HttpLevel)
}

func TestRootAnyMethodFromEnv(t *testing.T) {
	t.Setenv("STATUS__ROOT_ANY_METHOD", "false")

	cfg, err := parse(t, "")
	require.NoError(t, err)

	assert.False(t, cfg.Status.RootAnyMethod)
}

func TestUnrelatedEnvDoesNotCollide(t *testing.T) {
	t.Setenv("STATUS", "ok")
	t.Setenv("LOGGING", "verbose")
	t.Setenv("LOGGING__HTTP_LEVEL", "error")

	cfg, err := parse(t, "")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.HttpLevel)
	assert.True(t, cfg.Status.RootAnyMethod)
}

func TestConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "httpstatus.json")
	content := `{
		"log_format": "development",
		"logging": {"http_level": "debug"},
		"status": {"root_any_method": false},
		"port": 8080
	}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := parse(t, file)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.Logging.HttpLevel)
	assert.False(t, cfg.Status.RootAnyMethod)
}

func TestConfigFile_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "httpstatus.json")
	content := `{"logging": {"http_level": "verbose"}}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	_, err := parse(t, file)

	var validationErr *conf.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

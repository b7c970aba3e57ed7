package config

import (
	"github.com/tonesandtones/httpstatus/internal/status"
	"github.com/tonesandtones/httpstatus/util/conf"
)

type LoggingConfig struct {
	// HttpLevel is the level of the http access log. Env var names
	// can not contain dots, so it is set with LOGGING__HTTP_LEVEL.
	HttpLevel string `conf:"http_level"`
}

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Logging holds per logger overrides
	Logging LoggingConfig `conf:"logging"`

	// Status is the status dispatcher configuration
	Status status.Config `conf:"status"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":              "info",
	"log_format":             "production",
	"logging.http_level":     "info",
	"status.root_any_method": status.DefaultConfig.RootAnyMethod,
}

// CliMap maps global cli flags onto nested config keys.
var CliMap = map[string]string{
	"http-log-level":  "logging.http_level",
	"root-any-method": "status.root_any_method",
}

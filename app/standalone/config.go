package standalone

import (
	"github.com/tonesandtones/httpstatus/internal/metrics"
	"github.com/tonesandtones/httpstatus/internal/server"
	"github.com/tonesandtones/httpstatus/util/conf"
)

type Config struct {
	// HttpConfig represents the configuration for the HTTP server.
	HttpConfig server.HttpConfig `conf:",squash"`

	// Metrics represents the configuration for the metrics listener.
	Metrics metrics.Config `conf:"metrics"`
}

var DefaultConfig = conf.DefaultConfig{
	"host":         "0.0.0.0",
	"port":         80,
	"h2c":          false,
	"metrics.host": "0.0.0.0",
	"metrics.port": 0,
}

var CliMap = map[string]string{
	"metrics-host": "metrics.host",
	"metrics-port": "metrics.port",
}

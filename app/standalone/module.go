package standalone

import (
	"go.uber.org/fx"

	"github.com/tonesandtones/httpstatus/handler"
	"github.com/tonesandtones/httpstatus/internal/metrics"
	"github.com/tonesandtones/httpstatus/internal/server"
	"github.com/tonesandtones/httpstatus/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		handler.Module(),
		// provide server
		server.Module(config.HttpConfig),
		// provide metrics listener
		metrics.Module(config.Metrics),
	)
}

package lambda

import (
	"go.uber.org/fx"

	"github.com/tonesandtones/httpstatus/handler"
	"github.com/tonesandtones/httpstatus/util/logging"
)

// Module serves the root handler through the AWS Lambda runtime.
func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		fx.Supply(config),
		logging.DecorateLogger("lambda"),
		handler.Module(),
		fx.Provide(NewLifecycleRuntime),
		fx.Invoke(func(*Runtime) {}),
	)
}

package status

import "go.uber.org/fx"

// Module provides the status dispatcher.
func Module(config Config) fx.Option {
	return fx.Module(
		"status",

		// provide dispatcher config
		fx.Supply(config),

		// provide dispatcher
		fx.Provide(New),
	)
}

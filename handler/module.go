package handler

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"handler",
		// provide status handler
		fx.Provide(NewStatusHandler),
		// provide the root handler served on all paths
		fx.Provide(
			fx.Annotate(
				NewRootHandler,
				fx.ResultTags(`name:"root"`),
			),
		),
	)
}

package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tonesandtones/httpstatus/config"
	"github.com/tonesandtones/httpstatus/internal/metrics"
	"github.com/tonesandtones/httpstatus/internal/shell"
	"github.com/tonesandtones/httpstatus/internal/status"
	"github.com/tonesandtones/httpstatus/util/conf"
	"github.com/tonesandtones/httpstatus/util/logging"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide status dispatcher
		status.Module(config.Status),
		// provide metrics
		fx.Provide(metrics.NewLifecycleMetrics),
		// provide access logger
		fx.Provide(
			fx.Annotate(
				NewAccessLogger,
				fx.ResultTags(`name:"access"`),
			),
		),
	)

	return shell.New(log, sharedModule), nil
}

// NewAccessLogger builds the http access logger. Its level is
// configured independently of the application log level.
func NewAccessLogger(cfg config.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	log, err := logging.New(logging.Options{
		Level:    cfg.Logging.HttpLevel,
		Fallback: zapcore.InfoLevel,
		Format:   cfg.LogFormat,
		Fields: map[string]any{
			"app": logging.AppName,
		},
		// every 4xx and 5xx logs at warn
		DisableStacktrace: true,
	})
	if err != nil {
		return nil, err
	}

	log = log.Named("http")

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))

	return log, nil
}

package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tonesandtones/httpstatus/internal/server"
	"github.com/tonesandtones/httpstatus/util/logging"
)

type ListenerParams struct {
	fx.In

	Context context.Context
	Config  Config
	Metrics *Metrics
	Logger  *zap.Logger
}

// NewLifecycleMetrics creates the metrics and releases their
// collectors when the application stops.
func NewLifecycleMetrics(lc fx.Lifecycle) (*Metrics, error) {
	m, err := New()
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(m.UnregisterAll))

	return m, nil
}

// NewLifecycleListener starts a dedicated listener exposing /metrics,
// unless the configured port is zero.
func NewLifecycleListener(params ListenerParams, lc fx.Lifecycle) {
	if params.Config.Port == 0 {
		params.Logger.Debug("metrics listener disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", params.Metrics.HTTPHandler())

	srv := server.New(
		params.Context,
		server.HttpConfig{Host: params.Config.Host, Port: params.Config.Port},
		mux,
		params.Logger,
	)

	lc.Append(srv.Hook())
}

func Module(config Config) fx.Option {
	return fx.Module(
		"metrics",
		// rename logger for module
		logging.DecorateLogger("metrics"),
		// provide metrics config
		fx.Supply(config),
		// start the listener
		fx.Invoke(NewLifecycleListener),
	)
}

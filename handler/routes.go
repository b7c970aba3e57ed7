package handler

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tonesandtones/httpstatus/internal/metrics"
	"github.com/tonesandtones/httpstatus/internal/server"
)

type RootHandlerParams struct {
	fx.In

	Status    *StatusHandler
	Metrics   *metrics.Metrics
	AccessLog *zap.Logger `name:"access"`
}

// NewRootHandler wraps the status handler with the middleware chain,
// outermost first: panic recovery, access log, metrics.
//
// The result is mounted directly on the server. It must not sit behind
// an http.ServeMux, which would clean and redirect paths like //200//.
func NewRootHandler(params RootHandlerParams) http.Handler {
	var handler http.Handler = params.Status

	handler = params.Metrics.Middleware(handler)
	handler = server.AccessLog(params.AccessLog)(handler)

	if sentry.CurrentHub().Client() != nil {
		handler = sentryhttp.New(sentryhttp.Options{
			Repanic: false,
			Timeout: 2 * time.Second,
		}).Handle(handler)
	}

	return handler
}

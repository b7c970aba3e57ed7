package handler

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tonesandtones/httpstatus/internal/status"
)

type StatusHandlerParams struct {
	fx.In

	Dispatcher *status.Dispatcher
	Log        *zap.Logger
}

func NewStatusHandler(params StatusHandlerParams) *StatusHandler {
	params.Log.Debug("status rules", zap.Strings("rules", params.Dispatcher.Rules()))

	return &StatusHandler{
		dispatcher: params.Dispatcher,
		log:        params.Log,
	}
}

// StatusHandler serves the responses chosen by the status dispatcher.
type StatusHandler struct {
	dispatcher *status.Dispatcher
	log        *zap.Logger
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request := status.Request{
		Method: r.Method,
		Path:   r.URL.Path,
	}

	rule, response := h.dispatcher.Resolve(request)

	// Map response headers
	for k, v := range response.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	// Write response headers and status code. net/http sends 1xx
	// codes other than 101 as interim responses, so the body below
	// arrives with an implicit final 200.
	w.WriteHeader(response.StatusCode)

	// Write response body. The transport refuses bodies for
	// 204 and 304, which is fine: the status is what matters.
	if _, err := w.Write(response.Body); err != nil {
		h.log.Debug("failed to write response",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("rule", rule),
			zap.Int("status", response.StatusCode),
			zap.Error(err),
		)
	}
}

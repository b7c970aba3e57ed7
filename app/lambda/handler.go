package lambda

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidProxySource = errors.New("invalid proxy source")

// RuntimeParams represents the parameters required for the
// Lambda runtime.
type RuntimeParams struct {
	fx.In

	// Config is the configuration for the Lambda runtime.
	Config Config

	// Handler is the root handler, served for every request path.
	Handler http.Handler `name:"root"`

	// Context is the context for the Lambda runtime.
	Context context.Context

	// Logger is the logger for the Lambda runtime.
	Logger *zap.Logger
}

// Runtime feeds Lambda events of a single proxy source through
// the root handler.
type Runtime struct {
	source ProxySource
	proxy  any
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

// NewRuntime resolves the event proxy for the configured source.
// An error is returned for unknown proxy sources.
func NewRuntime(params RuntimeParams) (*Runtime, error) {
	proxy, err := NewProxy(params.Config.ProxySource, params.Handler)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(params.Context)

	return &Runtime{
		source: params.Config.ProxySource,
		proxy:  proxy,
		ctx:    ctx,
		cancel: cancel,
		log:    params.Logger,
	}, nil
}

// NewLifecycleRuntime creates a Runtime and binds it to the fx
// lifecycle.
func NewLifecycleRuntime(params RuntimeParams, lc fx.Lifecycle) (*Runtime, error) {
	runtime, err := NewRuntime(params)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StartStopHook(runtime.Start, runtime.Shutdown))

	return runtime, nil
}

// Start polls the Lambda runtime API for events in a new goroutine.
func (r *Runtime) Start() {
	r.log.Info("starting lambda runtime", zap.Stringer("proxy_source", r.source))

	go lambda.StartWithOptions(r.proxy, lambda.WithContext(r.ctx))
}

// Shutdown cancels the context handed to the Lambda runtime.
func (r *Runtime) Shutdown() {
	r.cancel()
}

// NewProxy returns the httpadapter proxy function that translates
// events of the given source into requests against h.
func NewProxy(source ProxySource, h http.Handler) (any, error) {
	parsed, ok := ParseProxySource(source.String())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProxySource, source)
	}

	switch parsed {
	case ProxySourceApiGatewayV1:
		return httpadapter.New(h).ProxyWithContext, nil
	case ProxySourceApiGatewayV2:
		return httpadapter.NewV2(h).ProxyWithContext, nil
	default:
		return httpadapter.NewALB(h).ProxyWithContext, nil
	}
}

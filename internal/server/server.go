package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const readHeaderTimeout = 10 * time.Second

type HttpServerParams struct {
	fx.In

	Context context.Context

	Config HttpConfig

	Handler http.Handler `name:"root"`
	Logger  *zap.Logger
}

type HttpServer struct {
	host     string
	port     int
	server   *http.Server
	listener net.Listener
	log      *zap.Logger
}

// New creates a server that serves handler on all paths.
func New(ctx context.Context, config HttpConfig, handler http.Handler, log *zap.Logger) *HttpServer {
	if config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(log.Named("stdlib")),
		// requests inherit the application context
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	return &HttpServer{
		host:   config.Host,
		port:   config.Port,
		server: server,
		log:    log,
	}
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	return New(params.Context, params.Config, params.Handler, params.Logger)
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	server := NewHttpServer(params)
	lc.Append(server.Hook())
	return server
}

// Hook binds the server to an fx lifecycle. The listener is opened
// synchronously, so a taken port fails the application start.
func (s *HttpServer) Hook() fx.Hook {
	return fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.Listen(ctx); err != nil {
				return err
			}
			go s.Serve()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	}
}

func (s *HttpServer) Listen(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(
		ctx,
		"tcp",
		fmt.Sprintf("%s:%d", s.host, s.port),
	)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}

	s.listener = listener

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	return nil
}

// Addr returns the address the server listens on, or nil if
// Listen has not been called yet.
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *HttpServer) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	if err := s.server.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		s.log.With(zap.Error(err)).Error("failed to serve")
		return err
	}

	return nil
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	return nil
}

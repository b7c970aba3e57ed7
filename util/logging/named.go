package logging

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NamedLogger returns a decorator appending name to the logger name,
// e.g. httpstatus.serve.metrics.
func NamedLogger(name string) func(log *zap.Logger) *zap.Logger {
	return func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	}
}

// DecorateLogger renames the logger within the enclosing fx module.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(NamedLogger(name))
}

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName is attached to every log entry.
const AppName = "httpstatus"

const (
	FormatProduction  = "production"
	FormatDevelopment = "development"
)

// Options describe how a logger is built.
type Options struct {
	// Level is one of debug, info, warn, error, dpanic, panic, fatal.
	// Unknown or empty values fall back to Fallback.
	Level string

	// Fallback is the level used if Level can not be parsed.
	Fallback zapcore.Level

	// Format is either production (json) or development (console).
	Format string

	// Fields are attached to every entry.
	Fields map[string]any

	// DisableStacktrace stops attaching stack traces to warn
	// (development) or error (production) entries.
	DisableStacktrace bool
}

// New builds a zap logger from the given options.
func New(opts Options) (*zap.Logger, error) {
	return NewConfig(opts).Build()
}

// NewConfig returns the zap config New builds its logger from.
func NewConfig(opts Options) zap.Config {
	var config zap.Config
	if opts.Format == FormatDevelopment {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = opts.Fields
	config.Level = ParseLevel(opts.Level, opts.Fallback)
	config.DisableStacktrace = opts.DisableStacktrace

	return config
}

func ParseLevel(lvl string, fallback zapcore.Level) zap.AtomicLevel {
	if lvl == "" {
		return zap.NewAtomicLevelAt(fallback)
	}

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(fallback)
}

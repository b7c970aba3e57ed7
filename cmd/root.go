package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tonesandtones/httpstatus/config"
	"github.com/tonesandtones/httpstatus/internal/shell"
	"github.com/tonesandtones/httpstatus/util/conf"
	"github.com/tonesandtones/httpstatus/util/logging"
)

// envPrefix scopes the env vars read for command configs, e.g.
// HTTPSTATUS__METRICS__PORT. Flags keep their unprefixed env vars.
const envPrefix = "HTTPSTATUS"

var (
	appName  = "httpstatus"
	appUsage = `A deterministic http endpoint that answers every request
for /<code> with the status code <code>, for load balancers,
proxies and probes under test.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "http-log-level",
				Usage:   "set the level of the http access log, independent of the log level.",
				EnvVars: []string{"HTTP_LOG_LEVEL"},
			},
			&cli.PathFlag{
				Name:      "config",
				Usage:     "load configuration from a .json or .env file.",
				TakesFile: true,
				EnvVars:   []string{"CONFIG_FILE"},
			},
			// status flags
			&cli.BoolFlag{
				Name:     "root-any-method",
				Usage:    "answer the root path for every http method, not only GET.",
				Value:    true,
				Category: "status",
				EnvVars:  []string{"STATUS_ROOT_ANY_METHOD"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			schema, err := config.NewSchema()
			if err != nil {
				return err
			}

			// parse config using defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli:      ctx,
				CliMap:   config.CliMap,
				Defaults: config.DefaultConfig,
				FileName: ctx.Path("config"),
				Schema:   schema,
				Log:      log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			_ = log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the app with the process arguments and returns
// the exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

// run executes the app and returns the process exit code.
func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code
	if shell.IsExitError(err) {
		return shell.ExitCode(err)
	}

	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	// otherwise, exit with exit code 1
	return 1
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:    ctx.String("log-level"),
		Fallback: zapcore.InfoLevel,
		Format:   getLogFormatFromCLI(ctx),
		Fields: map[string]any{
			"app": logging.AppName,
		},
	})
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return logging.FormatProduction
}

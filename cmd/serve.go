package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/tonesandtones/httpstatus/app"
	"github.com/tonesandtones/httpstatus/app/standalone"
	"github.com/tonesandtones/httpstatus/util/conf"
	"github.com/tonesandtones/httpstatus/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server that answers GET /<code>
with status <code> for every code between 100 and 999, GET / with
a greeting and everything else with 404.

The command will launch the http server and blocks indefin-
itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and echo requested status codes.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "0.0.0.0",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    80,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.StringFlag{
				Name:     "metrics-host",
				Usage:    "The host the metrics listener binds to.",
				Value:    "0.0.0.0",
				Category: "metrics",
				EnvVars:  []string{"METRICS_HOST"},
			},
			&cli.IntFlag{
				Name:     "metrics-port",
				Usage:    "The port to expose /metrics on. 0 disables the listener.",
				Value:    0,
				Category: "metrics",
				EnvVars:  []string{"METRICS_PORT"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[standalone.Config](conf.ParseOptions{
		Cli:       ctx,
		CliMap:    standalone.CliMap,
		Defaults:  standalone.DefaultConfig,
		EnvPrefix: envPrefix,
		FileName:  ctx.Path("config"),
		Log:       log,
	})
	if err != nil {
		return err
	}

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}

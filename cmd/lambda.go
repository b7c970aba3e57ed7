package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tonesandtones/httpstatus/app"
	"github.com/tonesandtones/httpstatus/app/lambda"
	"github.com/tonesandtones/httpstatus/util/conf"
	"github.com/tonesandtones/httpstatus/util/logging"
)

var (
	lambdaCmdDescription = `The lambda command serves the status echo handler as an AWS
Lambda runtime interface client, behind API Gateway (v1, v2)
or an Application Load Balancer. The responses are the same
as the ones of the serve command.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the status echo handler on AWS Lambda",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				Value:    "API_GW_V2",
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Defaults:  lambda.DefaultConfig,
		EnvPrefix: envPrefix,
		FileName:  ctx.Path("config"),
		Log:       log,
		Cli:       ctx,
	})
	if err != nil {
		return err
	}

	if _, ok := lambda.ParseProxySource(cfg.ProxySource.String()); !ok {
		return fmt.Errorf("%w: %s", lambda.ErrInvalidProxySource, cfg.ProxySource)
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}

package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tonesandtones/httpstatus/util/logging"
)

var (
	runCmdDescription = `The run command detects the execution environment from the
environment variables and starts the matching host. This
allows the same image to run on arbitrary platforms.

If the AWS_LAMBDA_RUNTIME_API environment variable is set,
httpstatus will start the AWS Lambda runtime handler, matching
the behaviour of the lambda command.

Otherwise, httpstatus will start the standalone http server,
matching the behaviour of the serve command.`
	runCmd = &cli.Command{
		Name:        "run",
		Usage:       "Detect execution environment and start serving.",
		Description: runCmdDescription,
		Action:      runAction,
		Flags:       []cli.Flag{},
	}
)

func runAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if isAWSLambda() {
		log.Info("detected AWS Lambda environment")
		return lambdaAction(ctx)
	}

	log.Info("detected standalone environment")
	return serveAction(ctx)
}

func isAWSLambda() bool {
	env, ok := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	return ok && env != ""
}

func init() {
	runCmd.Flags = append(runCmd.Flags, serveCmd.Flags...)
	runCmd.Flags = append(runCmd.Flags, lambdaCmd.Flags...)

	rootApp.Commands = append(rootApp.Commands, runCmd)
}

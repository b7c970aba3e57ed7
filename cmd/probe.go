package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tonesandtones/httpstatus/internal/probe"
	"github.com/tonesandtones/httpstatus/util/logging"
)

var (
	probeCmdDescription = `The probe command checks a running instance end to end. It
requests the root path, a path outside of the echoed range and
every status code from --from to --to, and compares status and
body of each response with the expected ones.

Bodies of 204 and 304 responses are not compared, as the http
transport strips them. The command exits non-zero if any check
failed.`
	probeCmd = &cli.Command{
		Name:        "probe",
		Usage:       "Check a running instance for the expected responses.",
		Description: probeCmdDescription,
		Action:      probeAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "The base url of the instance to probe.",
				Value:    "http://localhost:8080",
				Category: "probe",
				EnvVars:  []string{"PROBE_URL"},
			},
			&cli.IntFlag{
				Name:     "from",
				Usage:    "The first status code to request.",
				Value:    probe.DefaultOptions.From,
				Category: "probe",
				EnvVars:  []string{"PROBE_FROM"},
			},
			&cli.IntFlag{
				Name:     "to",
				Usage:    "The last status code to request.",
				Value:    probe.DefaultOptions.To,
				Category: "probe",
				EnvVars:  []string{"PROBE_TO"},
			},
			&cli.IntFlag{
				Name:     "concurrency",
				Aliases:  []string{"c"},
				Usage:    "The number of requests in flight.",
				Value:    probe.DefaultOptions.Concurrency,
				Category: "probe",
				EnvVars:  []string{"PROBE_CONCURRENCY"},
			},
			&cli.DurationFlag{
				Name:     "timeout",
				Usage:    "The timeout of each request.",
				Value:    probe.DefaultOptions.Timeout,
				Category: "probe",
				EnvVars:  []string{"PROBE_TIMEOUT"},
			},
		},
	}
)

func probeAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	log = log.Named("probe")

	prober, err := probe.New(ctx.String("url"), log)
	if err != nil {
		return err
	}

	report, err := prober.Run(ctx.Context, probe.Options{
		From:        ctx.Int("from"),
		To:          ctx.Int("to"),
		Concurrency: ctx.Int("concurrency"),
		Timeout:     ctx.Duration("timeout"),
	})
	if err != nil {
		return err
	}

	for _, failure := range report.Failures {
		log.Warn("check failed", zap.Stringer("failure", failure))
	}

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", probe.ErrChecksFailed, len(report.Failures), report.Checked)
	}

	log.Info("all checks passed", zap.Int("checks", report.Checked))

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, probeCmd)
}

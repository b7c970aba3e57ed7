package main

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	_ "go.uber.org/automaxprocs"

	"github.com/tonesandtones/httpstatus/cmd"
	"github.com/tonesandtones/httpstatus/util"
)

var Version string
var Buildtime string
var Commit string

func main() {
	err := setupSentry()
	if err != nil {
		log.Fatalf("sentry init failed: %s", err)
	}

	appVersion := "local"
	if Version != "" {
		appVersion = Version
	}

	appBuildtime, _ := time.Parse(time.RFC3339, Buildtime)

	code := cmd.Execute(cmd.ExecuteParams{
		Version:  appVersion,
		Compiled: appBuildtime,
	})

	// os.Exit skips deferred calls, flush explicitly
	flushSentry()

	os.Exit(code)
}

func setupSentry() error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "local"
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Debug:            util.Truthy(os.Getenv("SENTRY_DEBUG")),
		TracesSampleRate: 1.0,
		EnableTracing:    true,
		Environment:      environment,
		Release:          Commit,
	})
}

func flushSentry() {
	// Flush buffered events before the program terminates.
	sentry.Flush(2 * time.Second)
}

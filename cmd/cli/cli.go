// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package cli

import (
	"bufio"
	"io"
	"os"
	"sort"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/uplift-data/uplift/cmd"
	"github.com/uplift-data/uplift/config"
	"github.com/uplift-data/uplift/pkg/failure"
	"github.com/uplift-data/uplift/pkg/models"
	"github.com/uplift-data/uplift/pkg/notify/notifyiface"
	"github.com/uplift-data/uplift/pkg/report"
)

const (
	appVersion = cmd.AppVersion
	appName    = cmd.AppName
	appUsage   = "Aggregates data-movement failures and reports them to supported notification channels"
)

// the intake can carry long flattened stack traces
const maxReportLineBytes = 1024 * 1024

// RunCli allows running the application from the cli
func RunCli() {
	cfg, sentryEnabled, err := cmd.Init()
	if err != nil {
		exitWithError(err, sentryEnabled)
	}

	app := cli.NewApp()
	app.Name = appName
	app.Usage = appUsage
	app.Version = appVersion
	app.Compiled = time.Now().UTC()

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "input, i",
			Usage: "File holding newline delimited JSON failure reports (defaults to stdin)",
		},
	}

	app.Action = func(c *cli.Context) error {
		input := io.Reader(os.Stdin)
		if filename := c.String("input"); filename != "" {
			f, err := os.Open(filename)
			if err != nil {
				return errors.Wrap(err, "Failed to open input file")
			}
			defer f.Close()
			input = f
		}

		_, err := RunApp(cfg, input)
		return err
	}

	app.ExitErrHandler = func(context *cli.Context, err error) {
		if err != nil {
			exitWithError(err, sentryEnabled)
		}
	}

	if err := app.Run(os.Args); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("Failed to run cli")
	}
}

// RunApp reads failure reports from input until it is exhausted, routes each
// into the handler for its destination type and then flushes every handler.
// The merged run statistics are returned and pushed to the configured stats
// receiver.
func RunApp(cfg *config.Config, input io.Reader) (*models.ReportBuffer, error) {
	notifier, err := cfg.GetNotifier(appName, appVersion)
	if err != nil {
		return nil, err
	}

	allowed, err := cfg.GetDestinationTypes()
	if err != nil {
		return nil, err
	}

	handlers, err := collectReports(input, notifier, allowed)
	if err != nil {
		return nil, err
	}

	buffer := flushHandlers(handlers)

	tags, err := cfg.GetTags()
	if err != nil {
		return nil, err
	}
	statsReceiver, err := cfg.GetStatsReceiver(tags)
	if err != nil {
		return nil, err
	}
	if statsReceiver != nil {
		statsReceiver.Send(buffer)
	}

	log.Infof(buffer.String())
	return buffer, nil
}

// collectReports routes each report into a handler scoped to the report's
// destination type, creating handlers lazily. When an allow list is set,
// reports for other destination types are dropped with a warning.
func collectReports(input io.Reader, notifier notifyiface.Notifier, allowed []models.DestinationType) (map[models.DestinationType]*failure.Handler, error) {
	allowedMap := map[models.DestinationType]bool{}
	for _, dt := range allowed {
		allowedMap[dt] = true
	}

	handlers := map[models.DestinationType]*failure.Handler{}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReportLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		r, err := report.Parse(line)
		if err != nil {
			log.Warnf("Skipping malformed failure report: %s", err)
			continue
		}

		destinationType := r.Execution.Destination.Type
		if len(allowedMap) > 0 && !allowedMap[destinationType] {
			log.Warnf("Skipping failure report for unhandled destination type '%s'", destinationType)
			continue
		}

		handler, ok := handlers[destinationType]
		if !ok {
			handler = failure.NewHandler(destinationType, notifier)
			handlers[destinationType] = handler
		}

		if err := handler.AddError(r.Execution, r.Message); err != nil {
			return nil, errors.Wrap(err, "Failed to collect failure report")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Failed to read failure reports")
	}

	return handlers, nil
}

// flushHandlers notifies every handler in a stable order and merges their
// run statistics
func flushHandlers(handlers map[models.DestinationType]*failure.Handler) *models.ReportBuffer {
	destinationTypes := make([]string, 0, len(handlers))
	for dt := range handlers {
		destinationTypes = append(destinationTypes, string(dt))
	}
	sort.Strings(destinationTypes)

	buffer := models.ReportBuffer{}
	for _, dt := range destinationTypes {
		handler := handlers[models.DestinationType(dt)]
		handler.NotifyErrors()

		handlerReport := handler.Report()
		buffer.Append(&handlerReport)
	}
	return &buffer
}

// exitWithError will ensure we log the error and leave time for Sentry to flush
func exitWithError(err error, flushSentry bool) {
	log.WithFields(log.Fields{"error": err}).Error(err)
	if flushSentry {
		sentry.Flush(2 * time.Second)
	}
	os.Exit(1)
}

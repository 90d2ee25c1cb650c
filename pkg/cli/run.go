package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/cli/config"
	"github.com/secmon-lab/nudger/pkg/usecase"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// DefaultHTTPTimeout bounds every upstream call
const DefaultHTTPTimeout = 10 * time.Second

func httpTimeoutFlag(dst *time.Duration) cli.Flag {
	return &cli.DurationFlag{
		Name:        "http-timeout",
		Usage:       "Timeout of each upstream API call",
		Value:       DefaultHTTPTimeout,
		Destination: dst,
		Sources:     cli.EnvVars("NUDGER_HTTP_TIMEOUT"),
	}
}

func cmdRun() *cli.Command {
	var slackCfg config.Slack
	var leaveCfg config.Leave
	var holidayCfg config.Holiday
	var reminderCfg config.Reminder
	var timeout time.Duration

	flags := []cli.Flag{httpTimeoutFlag(&timeout)}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, leaveCfg.Flags()...)
	flags = append(flags, holidayCfg.Flags()...)
	flags = append(flags, reminderCfg.Flags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Post today's reminder into the stand-up thread",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			ctx = logging.With(ctx, logger)

			// Every setting is checked before the first upstream call
			reminder, err := reminderCfg.Build()
			if err != nil {
				return goerr.Wrap(err, "invalid reminder configuration")
			}
			if err := slackCfg.Validate(); err != nil {
				return err
			}
			if err := holidayCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Run configuration",
				"slack", slackCfg,
				"leave", leaveCfg,
				"holiday", holidayCfg,
				"reminder", reminderCfg,
				"http_timeout", timeout.String(),
			)

			slackSvc, err := slackCfg.Configure(timeout)
			if err != nil {
				return err
			}

			opts := []usecase.Option{}
			directory, err := leaveCfg.Configure(timeout)
			if err != nil {
				return err
			}
			if directory != nil {
				opts = append(opts, usecase.WithLeaveDirectory(directory))
			}

			oracle, err := holidayCfg.Configure(timeout, reminder.Location)
			if err != nil {
				return err
			}
			if oracle != nil {
				opts = append(opts, usecase.WithHolidayOracle(oracle))
			}

			uc := usecase.New(slackSvc, slackSvc, reminder, opts...)

			if _, err := uc.Reminder.Run(ctx); err != nil {
				return goerr.Wrap(err, "reminder run failed")
			}
			return nil
		},
	}
}

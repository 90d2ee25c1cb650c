package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/cli/config"
	"github.com/secmon-lab/nudger/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdHoliday() *cli.Command {
	var holidayCfg config.Holiday
	var timeout time.Duration
	var date string
	var timezone string

	flags := []cli.Flag{
		httpTimeoutFlag(&timeout),
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Date to check in YYYY-MM-DD (today when empty)",
			Destination: &date,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA timezone deciding today's date (server local time when empty)",
			Destination: &timezone,
			Sources:     cli.EnvVars("NUDGER_TIMEZONE", "TZ"),
		},
	}
	flags = append(flags, holidayCfg.Flags()...)

	return &cli.Command{
		Name:  "holiday",
		Usage: "Print whether a date is a non-working day",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = logging.With(ctx, logging.Default())

			loc := time.Local
			if timezone != "" {
				l, err := time.LoadLocation(timezone)
				if err != nil {
					return goerr.Wrap(config.ErrInvalidTimezone, "failed to load timezone",
						goerr.V(config.ValueKey, timezone),
						goerr.V("error", err.Error()))
				}
				loc = l
			}

			day := time.Now().In(loc)
			if date != "" {
				d, err := time.ParseInLocation(time.DateOnly, date, loc)
				if err != nil {
					return goerr.Wrap(config.ErrInvalidConfig, "date must be YYYY-MM-DD",
						goerr.V(config.ValueKey, date),
						goerr.V("error", err.Error()))
				}
				day = d
			}

			oracle, err := holidayCfg.Configure(timeout, loc)
			if err != nil {
				return err
			}
			if oracle == nil {
				_, _ = fmt.Fprintf(c.Root().Writer, "%s: holiday check disabled\n", day.Format(time.DateOnly))
				return nil
			}

			verdict := oracle.Check(ctx, day)
			if !verdict.NonWorking {
				_, _ = fmt.Fprintf(c.Root().Writer, "%s: working day\n", day.Format(time.DateOnly))
				return nil
			}
			_, _ = fmt.Fprintf(c.Root().Writer, "%s: %s (%s)\n", day.Format(time.DateOnly), verdict.Label, verdict.Source)
			return nil
		},
	}
}

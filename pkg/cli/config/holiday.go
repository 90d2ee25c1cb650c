package config

import (
	"log/slog"
	"slices"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/service/holiday"
	"github.com/secmon-lab/nudger/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Holiday struct {
	jurisdiction string
	feedURL      string
	disabled     bool
}

func (x *Holiday) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "holiday-jurisdiction",
			Usage:       "Bank holiday jurisdiction [england-and-wales|scotland|northern-ireland]",
			Category:    "Holiday",
			Value:       holiday.DefaultJurisdiction,
			Destination: &x.jurisdiction,
			Sources:     cli.EnvVars("NUDGER_HOLIDAY_JURISDICTION"),
		},
		&cli.StringFlag{
			Name:        "holiday-feed-url",
			Usage:       "Remote bank holiday feed URL (empty to rely on the built-in calendar only)",
			Category:    "Holiday",
			Value:       holiday.DefaultFeedURL,
			Destination: &x.feedURL,
			Sources:     cli.EnvVars("NUDGER_HOLIDAY_FEED_URL"),
		},
		&cli.BoolFlag{
			Name:        "no-holiday-check",
			Usage:       "Run on public holidays too",
			Category:    "Holiday",
			Destination: &x.disabled,
			Sources:     cli.EnvVars("NUDGER_NO_HOLIDAY_CHECK"),
		},
	}
}

func (x Holiday) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("jurisdiction", x.jurisdiction),
		slog.String("feed-url", x.feedURL),
		slog.Bool("disabled", x.disabled),
	)
}

// Validate checks the jurisdiction against the supported ones
func (x *Holiday) Validate() error {
	if x.disabled {
		return nil
	}
	if !slices.Contains(holiday.Jurisdictions(), x.jurisdiction) {
		return goerr.Wrap(ErrInvalidConfig, "unsupported holiday jurisdiction",
			goerr.V(FlagKey, "holiday-jurisdiction"),
			goerr.V(ValueKey, x.jurisdiction))
	}
	return nil
}

// Configure creates the holiday oracle evaluating "today" in loc, or returns
// nil when the holiday check is disabled
func (x *Holiday) Configure(timeout time.Duration, loc *time.Location) (*usecase.HolidayOracle, error) {
	if x.disabled {
		return nil, nil
	}
	if err := x.Validate(); err != nil {
		return nil, err
	}

	local, err := holiday.NewLocal(x.jurisdiction)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create local holiday calendar")
	}

	var oracle *usecase.HolidayOracle
	opts := []usecase.HolidayOption{usecase.WithHolidayLocation(loc)}
	if x.feedURL != "" {
		hc := cleanhttp.DefaultPooledClient()
		hc.Timeout = timeout
		feed := holiday.NewFeed(holiday.WithFeedURL(x.feedURL), holiday.WithHTTPClient(hc))
		oracle = usecase.NewHolidayOracle(local, feed, x.jurisdiction, opts...)
	} else {
		oracle = usecase.NewHolidayOracle(local, nil, x.jurisdiction, opts...)
	}

	return oracle, nil
}

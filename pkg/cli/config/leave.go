package config

import (
	"log/slog"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/service/leave"
	"github.com/secmon-lab/nudger/pkg/utils/ratelimit"
	"github.com/urfave/cli/v3"
)

type Leave struct {
	apiKey            string
	baseURL           string
	requestsPerMinute int
}

func (x *Leave) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "leave-api-key",
			Usage:       "Leave calendar API key (leave filtering is disabled when empty)",
			Category:    "Leave calendar",
			Destination: &x.apiKey,
			Sources:     cli.EnvVars("NUDGER_LEAVE_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "leave-base-url",
			Usage:       "Leave calendar API base URL",
			Category:    "Leave calendar",
			Value:       leave.DefaultBaseURL,
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("NUDGER_LEAVE_BASE_URL"),
		},
		&cli.IntFlag{
			Name:        "leave-requests-per-minute",
			Usage:       "Soft limit of leave calendar API calls per minute",
			Category:    "Leave calendar",
			Value:       leave.DefaultRequestsPerMinute,
			Destination: &x.requestsPerMinute,
			Sources:     cli.EnvVars("NUDGER_LEAVE_REQUESTS_PER_MINUTE"),
		},
	}
}

func (x Leave) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.IsConfigured()),
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("base-url", x.baseURL),
		slog.Int("requests-per-minute", x.requestsPerMinute),
	)
}

// IsConfigured reports whether leave filtering is enabled
func (x *Leave) IsConfigured() bool {
	return x.apiKey != ""
}

// Configure creates the leave directory, or returns nil when leave filtering
// is disabled
func (x *Leave) Configure(timeout time.Duration) (*leave.Directory, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	opts := []leave.ClientOption{
		leave.WithHTTPClient(hc),
		leave.WithLimiter(ratelimit.New(x.requestsPerMinute, time.Minute)),
	}
	if x.baseURL != "" {
		opts = append(opts, leave.WithBaseURL(x.baseURL))
	}

	api, err := leave.NewClient(x.apiKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create leave calendar client")
	}
	return leave.NewDirectory(api), nil
}

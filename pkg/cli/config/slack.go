package config

import (
	"log/slog"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken  string
	userToken string
	apiURL    string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for reading the channel and posting reminders)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("NUDGER_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-user-token",
			Usage:       "Slack User OAuth Token (for listing user group members, falls back to the bot token)",
			Category:    "Slack",
			Destination: &x.userToken,
			Sources:     cli.EnvVars("NUDGER_SLACK_USER_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API base URL",
			Category:    "Slack",
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("NUDGER_SLACK_API_URL"),
			Hidden:      true,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("user-token.len", len(x.userToken)),
		slog.String("api-url", x.apiURL),
	)
}

// Validate checks the settings required before any Slack call
func (x *Slack) Validate() error {
	if x.botToken == "" {
		return goerr.Wrap(ErrMissingRequired, "Slack bot token is required", goerr.V(FlagKey, "slack-bot-token"))
	}
	return nil
}

// Configure creates the Slack service with all API calls bounded by timeout
func (x *Slack) Configure(timeout time.Duration) (slack.Service, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	opts := []slack.Option{slack.WithHTTPClient(hc)}
	if x.userToken != "" {
		opts = append(opts, slack.WithUserToken(x.userToken))
	}
	if x.apiURL != "" {
		opts = append(opts, slack.WithAPIURL(x.apiURL))
	}

	svc, err := slack.New(x.botToken, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack service")
	}
	return svc, nil
}

package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/service/slack"
	"github.com/secmon-lab/jsmconf/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for run summary notifications
type Slack struct {
	botToken  string
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for posting run summaries)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("JSMCONF_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving run summaries",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("JSMCONF_SLACK_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channelID),
	)
}

// IsConfigured checks if both token and channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure returns the use case options enabling Slack notifications.
// Nothing is returned when Slack is not configured.
func (x *Slack) Configure() ([]usecase.Option, error) {
	if x.botToken == "" && x.channelID == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrInvalidConfig, "--slack-bot-token and --slack-channel must be set together")
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Slack client")
	}
	return []usecase.Option{usecase.WithSlack(svc, x.channelID)}, nil
}

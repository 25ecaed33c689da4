package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/urfave/cli/v3"
)

// Jira holds CLI flags for the Jira Cloud connection
type Jira struct {
	domain   string
	username string
	apiToken string
	baseURL  string
}

func (x *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-domain",
			Usage:       "Jira Cloud site domain (e.g. example.atlassian.net)",
			Category:    "Jira",
			Destination: &x.domain,
			Sources:     cli.EnvVars("JSMCONF_JIRA_DOMAIN"),
		},
		&cli.StringFlag{
			Name:        "jira-username",
			Usage:       "Jira account email used for basic authentication",
			Category:    "Jira",
			Destination: &x.username,
			Sources:     cli.EnvVars("JSMCONF_JIRA_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "jira-api-token",
			Usage:       "Jira API token",
			Category:    "Jira",
			Destination: &x.apiToken,
			Sources:     cli.EnvVars("JSMCONF_JIRA_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Override the REST API base URL (default https://<domain>/rest/api/3)",
			Category:    "Jira",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("JSMCONF_JIRA_BASE_URL"),
		},
	}
}

func (x Jira) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("domain", x.domain),
		slog.String("username", x.username),
		slog.Int("api-token.len", len(x.apiToken)),
		slog.String("base-url", x.baseURL),
	)
}

// Configure creates the Jira service
func (x *Jira) Configure() (jira.Service, error) {
	if x.domain == "" && x.baseURL == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "--jira-domain is required")
	}

	var opts []jira.Option
	if x.baseURL != "" {
		opts = append(opts, jira.WithBaseURL(x.baseURL))
	}

	svc, err := jira.New(x.domain, x.username, x.apiToken, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Jira client", goerr.V("domain", x.domain))
	}
	return svc, nil
}

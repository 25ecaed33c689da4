package cli

import (
	"context"

	"github.com/secmon-lab/jsmconf/pkg/cli/config"
	"github.com/secmon-lab/jsmconf/pkg/usecase"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// runtime bundles the configuration every command needs to reach Jira and the state
type runtime struct {
	jira  config.Jira
	state config.State
	slack config.Slack
}

func (x *runtime) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.jira.Flags()...)
	flags = append(flags, x.state.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

// useCases builds the use cases. The returned function releases the state backend.
func (x *runtime) useCases(ctx context.Context, opts ...usecase.Option) (*usecase.UseCases, func(), error) {
	jiraService, err := x.jira.Configure()
	if err != nil {
		return nil, nil, err
	}

	slackOpts, err := x.slack.Configure()
	if err != nil {
		return nil, nil, err
	}

	repo, closer, err := x.state.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	logging.From(ctx).Debug("Runtime configured",
		"jira", x.jira,
		"state", x.state,
		"slack", x.slack,
	)

	opts = append(opts, slackOpts...)
	return usecase.New(jiraService, repo, opts...), closer, nil
}

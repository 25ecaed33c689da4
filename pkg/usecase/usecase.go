package usecase

import (
	"time"

	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/service/slack"
)

type UseCases struct {
	jira  jira.Service
	state interfaces.StateRepository

	slack        slack.Service
	slackChannel string

	interval time.Duration
}

type Option func(*UseCases)

// WithSlack posts a run summary to channelID after apply, destroy and clean
func WithSlack(svc slack.Service, channelID string) Option {
	return func(uc *UseCases) {
		uc.slack = svc
		uc.slackChannel = channelID
	}
}

// WithInterval sets a pause between two field creations
func WithInterval(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.interval = d
	}
}

func New(jiraService jira.Service, state interfaces.StateRepository, opts ...Option) *UseCases {
	uc := &UseCases{
		jira:  jiraService,
		state: state,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

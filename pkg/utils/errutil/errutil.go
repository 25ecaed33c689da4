package errutil

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a Sentry client is configured.
// The error is returned unchanged so callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	// Extract goerr values for structured logging
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("message", msg)
			if ge != nil {
				scope.SetContext("goerr", sentry.Context(ge.Values()))
			}
			hub.CaptureException(err)
		})
	}

	return err
}

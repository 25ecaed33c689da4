package jira

import "github.com/m-mizutani/goerr/v2"

// ErrUnexpectedStatus is wrapped into every error caused by a non-success HTTP status
var ErrUnexpectedStatus = goerr.New("unexpected status code from Jira")

// Context keys for error values
const (
	MethodKey    = "method"
	PathKey      = "path"
	StatusKey    = "status"
	BodyKey      = "body"
	FieldIDKey   = "field_id"
	ContextIDKey = "context_id"
)

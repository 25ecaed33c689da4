package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Lookup errors, recorded per field
	ErrContextNotFound      = errors.New("field context not found")
	ErrOptionNotFound       = errors.New("option not found")
	ErrParentOptionNotFound = errors.New("parent option not found")
	ErrChildOptionNotFound  = errors.New("child option not found")
	ErrNoDefaultOptions     = errors.New("no valid default options")
	ErrUnsupportedFieldType = errors.New("default value is not supported for field type")
	ErrEmptyFieldID         = errors.New("Jira returned an empty field ID")

	// Input errors
	ErrInvalidIterations = errors.New("iterations must be a positive integer")
	ErrEmptyQuery        = errors.New("search query is required")

	// State errors
	ErrPendingDeletion = errors.New("fields of a previous apply are still pending deletion")
)

// Context keys for error values
const (
	FieldNameKey  = "field_name"
	FieldIDKey    = "field_id"
	ContextIDKey  = "context_id"
	FieldTypeKey  = "field_type"
	StepKey       = "step"
	ValueKey      = "value"
	ParentKey     = "parent"
	IterationsKey = "iterations"
	RemainingKey  = "remaining"
)

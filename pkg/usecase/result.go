package usecase

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// Step identifies where a field failed
type Step string

const (
	StepCreateField   Step = "create_field"
	StepGetContext    Step = "get_context"
	StepCreateContext Step = "create_context"
	StepAddOptions    Step = "add_options"
	StepGetOptions    Step = "get_options"
	StepSetDefault    Step = "set_default"
	StepDeleteField   Step = "delete_field"
)

// FieldError is a failure recorded for one field. Batches keep going after it.
type FieldError struct {
	Name    string
	FieldID types.FieldID
	Step    Step
	Err     error
}

func (e *FieldError) Error() string {
	if e.FieldID != "" {
		return fmt.Sprintf("%s (%s) %s: %v", e.Name, e.FieldID, e.Step, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Name, e.Step, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func recordError(ctx context.Context, errs *[]*FieldError, name string, fieldID types.FieldID, step Step, err error) {
	fe := &FieldError{Name: name, FieldID: fieldID, Step: step, Err: err}
	*errs = append(*errs, fe)

	attrs := []any{
		FieldNameKey, name,
		StepKey, string(step),
		"error", err.Error(),
	}
	if fieldID != "" {
		attrs = append(attrs, FieldIDKey, fieldID)
	}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, "values", ge.Values())
	}
	logging.From(ctx).Warn("Field step failed", attrs...)
}

// CreateResult is the outcome of one CreateFields batch
type CreateResult struct {
	Fields map[string]*model.RemoteField
	Errors []*FieldError
}

func newCreateResult() *CreateResult {
	return &CreateResult{Fields: make(map[string]*model.RemoteField)}
}

// Names returns the created field names in sorted order
func (r *CreateResult) Names() []string {
	return slices.Sorted(maps.Keys(r.Fields))
}

func (r *CreateResult) addError(ctx context.Context, name string, fieldID types.FieldID, step Step, err error) {
	recordError(ctx, &r.Errors, name, fieldID, step, err)
}

// DeleteResult is the outcome of one DeleteFields batch. NotDeleted holds every
// entry that is still present remotely or was never processed.
type DeleteResult struct {
	Deleted    []string
	NotDeleted map[string]*model.RemoteField
	Errors     []*FieldError
}

func newDeleteResult() *DeleteResult {
	return &DeleteResult{
		Deleted:    []string{},
		NotDeleted: make(map[string]*model.RemoteField),
	}
}

func (r *DeleteResult) addError(ctx context.Context, name string, fieldID types.FieldID, step Step, err error) {
	recordError(ctx, &r.Errors, name, fieldID, step, err)
}

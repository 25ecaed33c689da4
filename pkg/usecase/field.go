package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/domain/model/config"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/utils/errutil"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// CreateFields creates iterations copies of every template, named "<name>_<n>" for n in 1..iterations.
// Failures of individual fields are collected in the result; the returned error is
// only set for invalid input or when ctx is done, in which case the fields created
// so far are returned alongside it.
func (uc *UseCases) CreateFields(ctx context.Context, templates []config.FieldDefinition, iterations int) (*CreateResult, error) {
	if iterations <= 0 {
		return nil, goerr.Wrap(ErrInvalidIterations, "invalid iterations", goerr.V(IterationsKey, iterations))
	}

	result := newCreateResult()
	first := true

	for n := 1; n <= iterations; n++ {
		for _, tmpl := range templates {
			if !first {
				if err := uc.wait(ctx); err != nil {
					return result, goerr.Wrap(err, "field creation interrupted", goerr.V("created", len(result.Fields)))
				}
			}
			first = false

			if err := ctx.Err(); err != nil {
				return result, goerr.Wrap(err, "field creation interrupted", goerr.V("created", len(result.Fields)))
			}

			def := tmpl.Instance(n)
			if field := uc.createField(ctx, def, result); field != nil {
				result.Fields[def.Name] = field
			}
		}
	}

	logging.From(ctx).Info("Custom fields created",
		"created", len(result.Fields),
		"errors", len(result.Errors))

	return result, nil
}

func (uc *UseCases) wait(ctx context.Context) error {
	if uc.interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(uc.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// createField runs the create sequence of one concrete field. It returns nil
// when the field itself could not be created.
func (uc *UseCases) createField(ctx context.Context, def config.FieldDefinition, result *CreateResult) *model.RemoteField {
	logger := logging.From(ctx).With(FieldNameKey, def.Name)

	created, err := uc.jira.CreateField(ctx, &jira.CreateFieldRequest{
		Name:        def.Name,
		Description: def.Description,
		Type:        def.Type.Key(),
		SearcherKey: types.SearcherKey(def.SearcherKey),
	})
	if err != nil {
		result.addError(ctx, def.Name, "", StepCreateField, err)
		return nil
	}
	if created.ID == "" {
		result.addError(ctx, def.Name, "", StepCreateField, goerr.Wrap(ErrEmptyFieldID, "field created without ID"))
		return nil
	}

	fieldID := types.FieldID(created.ID)
	logger.Info("Custom field created", FieldIDKey, fieldID)

	field := &model.RemoteField{
		ID:      fieldID,
		Type:    def.Type,
		Options: []model.RemoteOption{},
	}

	field.ContextID = uc.ensureContext(ctx, def.Name, fieldID, result)
	if field.ContextID == "" {
		return field
	}

	if def.HasOptions() {
		uc.addOptions(ctx, def, fieldID, field.ContextID, result)
	}

	if def.DefaultValue != nil {
		uc.setDefaultValue(ctx, def, fieldID, field.ContextID, result)
	}

	// Option IDs are assigned by Jira, so the snapshot is read back rather than built locally
	if def.HasOptions() {
		options, err := uc.fetchOptions(ctx, fieldID, field.ContextID, def.Type)
		if err != nil {
			result.addError(ctx, def.Name, fieldID, StepGetOptions, err)
		} else {
			field.Options = options
		}
	}

	return field
}

// ensureContext returns the first context of the field, creating one when the field has none.
// An empty string means no context is available.
func (uc *UseCases) ensureContext(ctx context.Context, name string, fieldID types.FieldID, result *CreateResult) string {
	contexts, err := uc.jira.ListContexts(ctx, fieldID.String())
	if err != nil {
		result.addError(ctx, name, fieldID, StepGetContext, err)
	} else if len(contexts) > 0 && contexts[0].ID != "" {
		return contexts[0].ID
	}

	fc, err := uc.jira.CreateContext(ctx, fieldID.String(), &jira.CreateContextRequest{
		Name:         "Default Context for " + fieldID.String(),
		Description:  "Context created by jsmconf",
		ProjectIDs:   []string{},
		IssueTypeIDs: []string{},
	})
	if err != nil {
		result.addError(ctx, name, fieldID, StepCreateContext, err)
		return ""
	}
	if fc.ID == "" {
		result.addError(ctx, name, fieldID, StepCreateContext,
			goerr.Wrap(ErrContextNotFound, "context created without ID", goerr.V(FieldIDKey, fieldID)))
		return ""
	}

	logging.From(ctx).Debug("Field context created", FieldNameKey, name, FieldIDKey, fieldID, ContextIDKey, fc.ID)
	return fc.ID
}

// DeleteOption configures DeleteFields
type DeleteOption func(*deleteConfig)

type deleteConfig struct {
	checkpoint func(ctx context.Context, name string) error
}

// WithCheckpoint registers fn to run after every successful deletion, typically to
// persist progress so an interrupted batch can be resumed. A failing checkpoint is
// logged and does not stop the batch.
func WithCheckpoint(fn func(ctx context.Context, name string) error) DeleteOption {
	return func(cfg *deleteConfig) {
		cfg.checkpoint = fn
	}
}

// DeleteFields deletes every recorded field. Entries whose deletion fails, and
// entries left unprocessed because ctx is done, are returned in NotDeleted.
func (uc *UseCases) DeleteFields(ctx context.Context, fields map[string]*model.RemoteField, opts ...DeleteOption) *DeleteResult {
	var cfg deleteConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	result := newDeleteResult()
	rec := &model.StateRecord{CustomFields: fields}

	for _, name := range rec.Names() {
		field := fields[name]

		if err := ctx.Err(); err != nil {
			result.NotDeleted[name] = field
			continue
		}

		if field == nil || field.ID == "" {
			result.addError(ctx, name, "", StepDeleteField, goerr.Wrap(ErrEmptyFieldID, "recorded field has no ID"))
			result.NotDeleted[name] = field
			continue
		}

		if err := uc.jira.DeleteField(ctx, field.ID.String()); err != nil {
			result.addError(ctx, name, field.ID, StepDeleteField, err)
			result.NotDeleted[name] = field
			continue
		}

		result.Deleted = append(result.Deleted, name)
		logging.From(ctx).Info("Custom field deleted", FieldNameKey, name, FieldIDKey, field.ID)

		if cfg.checkpoint != nil {
			if err := cfg.checkpoint(ctx, name); err != nil {
				errutil.Handle(ctx, err, "failed to checkpoint field deletion")
			}
		}
	}

	logging.From(ctx).Info("Custom fields deleted",
		"deleted", len(result.Deleted),
		"not_deleted", len(result.NotDeleted),
		"errors", len(result.Errors))

	return result
}

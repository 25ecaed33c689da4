package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/domain/model/config"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// addOptions creates the options of def in the given context
func (uc *UseCases) addOptions(ctx context.Context, def config.FieldDefinition, fieldID types.FieldID, contextID string, result *CreateResult) {
	if def.Type.IsCascading() {
		uc.addCascadingOptions(ctx, def, fieldID, contextID, result)
		return
	}

	inputs := make([]*jira.OptionInput, 0, len(def.Options))
	for _, opt := range def.Options {
		inputs = append(inputs, &jira.OptionInput{Value: opt.Value})
	}

	if _, err := uc.jira.CreateOptions(ctx, fieldID.String(), contextID, inputs); err != nil {
		result.addError(ctx, def.Name, fieldID, StepAddOptions, err)
		return
	}

	logging.From(ctx).Debug("Options added",
		FieldNameKey, def.Name,
		FieldIDKey, fieldID,
		"count", len(inputs))
}

// addCascadingOptions creates parents first, one request each, then children
// referencing the ID Jira assigned to their parent
func (uc *UseCases) addCascadingOptions(ctx context.Context, def config.FieldDefinition, fieldID types.FieldID, contextID string, result *CreateResult) {
	logger := logging.From(ctx).With(FieldNameKey, def.Name, FieldIDKey, fieldID)
	parentIDs := make(map[string]string)

	for _, opt := range def.Options {
		if opt.IsChild() {
			continue
		}

		created, err := uc.jira.CreateOptions(ctx, fieldID.String(), contextID, []*jira.OptionInput{{Value: opt.Value}})
		if err != nil {
			result.addError(ctx, def.Name, fieldID, StepAddOptions,
				goerr.Wrap(err, "failed to add parent option", goerr.V(ValueKey, opt.Value)))
			continue
		}
		if len(created) == 0 || created[0].ID == "" {
			result.addError(ctx, def.Name, fieldID, StepAddOptions,
				goerr.Wrap(ErrOptionNotFound, "parent option created without ID", goerr.V(ValueKey, opt.Value)))
			continue
		}

		parentIDs[opt.Value] = created[0].ID
		logger.Debug("Parent option added", ValueKey, opt.Value, "option_id", created[0].ID)
	}

	for _, opt := range def.Options {
		if !opt.IsChild() {
			continue
		}

		parentID, ok := parentIDs[opt.ParentValue]
		if !ok {
			logger.Warn("Parent option not found, skipping child option",
				ValueKey, opt.Value,
				ParentKey, opt.ParentValue)
			continue
		}

		input := &jira.OptionInput{Value: opt.Value, ParentID: parentID}
		if _, err := uc.jira.CreateOptions(ctx, fieldID.String(), contextID, []*jira.OptionInput{input}); err != nil {
			result.addError(ctx, def.Name, fieldID, StepAddOptions,
				goerr.Wrap(err, "failed to add child option",
					goerr.V(ValueKey, opt.Value),
					goerr.V(ParentKey, opt.ParentValue)))
			continue
		}

		logger.Debug("Child option added", ValueKey, opt.Value, ParentKey, opt.ParentValue)
	}
}

// fetchOptions reads every option of a context back from Jira. Cascading children
// are nested under their parent; a child whose parent is not listed is dropped.
func (uc *UseCases) fetchOptions(ctx context.Context, fieldID types.FieldID, contextID string, fieldType types.FieldType) ([]model.RemoteOption, error) {
	options, err := uc.jira.ListOptions(ctx, fieldID.String(), contextID)
	if err != nil {
		return nil, err
	}

	if fieldType.IsCascading() {
		return nestOptions(options), nil
	}

	result := make([]model.RemoteOption, 0, len(options))
	for _, opt := range options {
		result = append(result, model.RemoteOption{Value: opt.Value, ID: opt.ID})
	}
	return result, nil
}

func nestOptions(options []*jira.CustomFieldOption) []model.RemoteOption {
	var parents []model.RemoteOption
	index := make(map[string]int)

	for _, opt := range options {
		if opt.IsChild() {
			continue
		}
		index[opt.ID] = len(parents)
		parents = append(parents, model.RemoteOption{
			ParentOptionValue: opt.Value,
			ParentOptionID:    opt.ID,
			ChildOptions:      []model.ChildOption{},
		})
	}

	for _, opt := range options {
		if !opt.IsChild() {
			continue
		}
		i, ok := index[opt.ParentID]
		if !ok {
			continue
		}
		parents[i].ChildOptions = append(parents[i].ChildOptions, model.ChildOption{Value: opt.Value, ID: opt.ID})
	}

	if parents == nil {
		return []model.RemoteOption{}
	}
	return parents
}

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

// setDefaultValue resolves the requested default of def into a Jira payload and writes it.
// Nothing is written when the payload cannot be built.
func (uc *UseCases) setDefaultValue(ctx context.Context, def config.FieldDefinition, fieldID types.FieldID, contextID string, result *CreateResult) {
	value, err := uc.buildDefaultValue(ctx, def, fieldID, contextID)
	if err != nil {
		result.addError(ctx, def.Name, fieldID, StepSetDefault, err)
		return
	}

	if err := uc.jira.SetDefaultValues(ctx, fieldID.String(), []*jira.DefaultValue{value}); err != nil {
		result.addError(ctx, def.Name, fieldID, StepSetDefault, err)
		return
	}

	logging.From(ctx).Debug("Default value set", FieldNameKey, def.Name, FieldIDKey, fieldID, "type", value.Type)
}

func (uc *UseCases) buildDefaultValue(ctx context.Context, def config.FieldDefinition, fieldID types.FieldID, contextID string) (*jira.DefaultValue, error) {
	dv := def.DefaultValue

	switch def.Type {
	case types.FieldTypeTextField:
		text := dv.Text
		return &jira.DefaultValue{Type: jira.DefaultTypeTextField, ContextID: contextID, Text: &text}, nil

	case types.FieldTypeFloat:
		n := jira.Number(dv.Number)
		return &jira.DefaultValue{Type: jira.DefaultTypeFloat, ContextID: contextID, Number: &n}, nil

	case types.FieldTypeDateTime:
		dt := dv.Text
		return &jira.DefaultValue{Type: jira.DefaultTypeDatePicker, ContextID: contextID, DateTime: &dt}, nil

	case types.FieldTypeSelect:
		options, err := uc.fetchOptions(ctx, fieldID, contextID, def.Type)
		if err != nil {
			return nil, err
		}
		id, ok := findOption(options, dv.Text)
		if !ok {
			return nil, goerr.Wrap(ErrOptionNotFound, "default option not found",
				goerr.V(FieldIDKey, fieldID),
				goerr.V(ValueKey, dv.Text))
		}
		return &jira.DefaultValue{Type: jira.DefaultTypeSingle, ContextID: contextID, OptionID: id}, nil

	case types.FieldTypeMultiSelect:
		options, err := uc.fetchOptions(ctx, fieldID, contextID, def.Type)
		if err != nil {
			return nil, err
		}

		var ids []string
		for _, v := range dv.Choices {
			id, ok := findOption(options, v)
			if !ok {
				logging.From(ctx).Warn("Default option not found", FieldNameKey, def.Name, FieldIDKey, fieldID, ValueKey, v)
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return nil, goerr.Wrap(ErrNoDefaultOptions, "no valid default options",
				goerr.V(FieldIDKey, fieldID),
				goerr.V(ValueKey, dv.Choices))
		}
		return &jira.DefaultValue{Type: jira.DefaultTypeMultiple, ContextID: contextID, OptionIDs: ids}, nil

	case types.FieldTypeCascadingSelect:
		if len(dv.Choices) == 0 {
			return nil, goerr.Wrap(ErrParentOptionNotFound, "cascading default has no parent value", goerr.V(FieldIDKey, fieldID))
		}

		options, err := uc.fetchOptions(ctx, fieldID, contextID, def.Type)
		if err != nil {
			return nil, err
		}
		parent, ok := findParentOption(options, dv.Choices[0])
		if !ok {
			return nil, goerr.Wrap(ErrParentOptionNotFound, "default parent option not found",
				goerr.V(FieldIDKey, fieldID),
				goerr.V(ValueKey, dv.Choices[0]))
		}

		value := &jira.DefaultValue{Type: jira.DefaultTypeCascading, ContextID: contextID, OptionID: parent.ParentOptionID}
		if len(dv.Choices) > 1 {
			childID, ok := findChildOption(parent, dv.Choices[1])
			if !ok {
				return nil, goerr.Wrap(ErrChildOptionNotFound, "default child option not found",
					goerr.V(FieldIDKey, fieldID),
					goerr.V(ParentKey, dv.Choices[0]),
					goerr.V(ValueKey, dv.Choices[1]))
			}
			value.CascadingOptionID = childID
		}
		return value, nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedFieldType, "cannot set default value",
			goerr.V(FieldIDKey, fieldID),
			goerr.V(FieldTypeKey, def.Type))
	}
}

func findOption(options []model.RemoteOption, value string) (string, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt.ID, true
		}
	}
	return "", false
}

func findParentOption(options []model.RemoteOption, value string) (model.RemoteOption, bool) {
	for _, opt := range options {
		if opt.ParentOptionValue == value {
			return opt, true
		}
	}
	return model.RemoteOption{}, false
}

func findChildOption(parent model.RemoteOption, value string) (string, bool) {
	for _, child := range parent.ChildOptions {
		if child.Value == value {
			return child.ID, true
		}
	}
	return "", false
}

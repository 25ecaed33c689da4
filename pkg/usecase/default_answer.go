package usecase

import (
	"context"

	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// ProcessDefaultAnswer converts Jira default values into the answer form used by
// form builders. Only the first value is consulted.
func ProcessDefaultAnswer(questionType types.QuestionType, values []*jira.DefaultValue) model.DefaultAnswer {
	if len(values) == 0 || values[0] == nil {
		return emptyAnswer(questionType)
	}

	dv := values[0]

	switch questionType {
	case types.QuestionTypeTextLine, types.QuestionTypeText:
		return model.TextAnswer(deref(dv.Text))

	case types.QuestionTypeNumber:
		if dv.Number == nil {
			return model.TextAnswer("")
		}
		return model.TextAnswer(dv.Number.String())

	case types.QuestionTypeDateTime:
		return model.TextAnswer(deref(dv.DateTime))

	case types.QuestionTypeSingleChoice:
		if dv.OptionID == "" {
			return model.ChoiceAnswer()
		}
		return model.ChoiceAnswer(dv.OptionID)

	case types.QuestionTypeMultipleChoice:
		return model.ChoiceAnswer(dv.OptionIDs...)

	case types.QuestionTypeCascadingChoice:
		if dv.OptionID == "" || dv.CascadingOptionID == "" {
			return model.ChoiceAnswer()
		}
		return model.ChoiceAnswer(dv.OptionID + ":" + dv.CascadingOptionID)

	default:
		return model.TextAnswer("")
	}
}

// DefaultAnswer fetches the default values of a field and normalizes them.
// A failed lookup is treated as a field without default values.
func (uc *UseCases) DefaultAnswer(ctx context.Context, fieldID types.FieldID, questionType types.QuestionType) model.DefaultAnswer {
	values, err := uc.jira.GetDefaultValues(ctx, fieldID.String())
	if err != nil {
		logging.From(ctx).Warn("Failed to get default values",
			FieldIDKey, fieldID,
			"error", err.Error())
		values = nil
	}
	return ProcessDefaultAnswer(questionType, values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// emptyAnswer is the answer of a question without default. Only tl, no and dt
// answer with empty text; ts and every other tag answer with no choice.
func emptyAnswer(questionType types.QuestionType) model.DefaultAnswer {
	switch questionType {
	case types.QuestionTypeTextLine, types.QuestionTypeNumber, types.QuestionTypeDateTime:
		return model.TextAnswer("")
	default:
		return model.ChoiceAnswer()
	}
}

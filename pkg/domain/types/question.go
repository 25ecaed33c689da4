package types

import "github.com/m-mizutani/goerr/v2"

// QuestionType is the short tag a downstream form consumer uses to classify a question
type QuestionType string

const (
	QuestionTypeTextLine        QuestionType = "tl"
	QuestionTypeNumber          QuestionType = "no"
	QuestionTypeDateTime        QuestionType = "dt"
	QuestionTypeText            QuestionType = "ts"
	QuestionTypeSingleChoice    QuestionType = "cd"
	QuestionTypeMultipleChoice  QuestionType = "cl"
	QuestionTypeCascadingChoice QuestionType = "cc"
)

// AllQuestionTypes returns all valid question types
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionTypeTextLine,
		QuestionTypeNumber,
		QuestionTypeDateTime,
		QuestionTypeText,
		QuestionTypeSingleChoice,
		QuestionTypeMultipleChoice,
		QuestionTypeCascadingChoice,
	}
}

// IsValid checks if the question type is valid
func (q QuestionType) IsValid() bool {
	return q.IsScalar() || q.IsChoice()
}

// IsScalar reports whether answers of this type are a single text value
func (q QuestionType) IsScalar() bool {
	switch q {
	case QuestionTypeTextLine,
		QuestionTypeNumber,
		QuestionTypeDateTime,
		QuestionTypeText:
		return true
	default:
		return false
	}
}

// IsChoice reports whether answers of this type are a list of option IDs
func (q QuestionType) IsChoice() bool {
	switch q {
	case QuestionTypeSingleChoice,
		QuestionTypeMultipleChoice,
		QuestionTypeCascadingChoice:
		return true
	default:
		return false
	}
}

// String returns the string representation of the question type
func (q QuestionType) String() string {
	return string(q)
}

// ParseQuestionType parses a string into a QuestionType
func ParseQuestionType(s string) (QuestionType, error) {
	q := QuestionType(s)
	if !q.IsValid() {
		return "", goerr.New("invalid question type", goerr.V("type", s))
	}
	return q, nil
}

package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CustomFieldTypePrefix is the plugin key prefix Jira uses for built-in custom field types and searchers
const CustomFieldTypePrefix = "com.atlassian.jira.plugin.system.customfieldtypes:"

// FieldID represents the Jira identifier of a custom field (e.g. "customfield_10042")
type FieldID string

// String returns the string representation of the field ID
func (id FieldID) String() string {
	return string(id)
}

// FieldType represents the type of a Jira custom field
type FieldType string

const (
	FieldTypeTextField       FieldType = "textfield"
	FieldTypeFloat           FieldType = "float"
	FieldTypeDateTime        FieldType = "datetime"
	FieldTypeSelect          FieldType = "select"
	FieldTypeMultiSelect     FieldType = "multiselect"
	FieldTypeCascadingSelect FieldType = "cascadingselect"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeTextField,
		FieldTypeFloat,
		FieldTypeDateTime,
		FieldTypeSelect,
		FieldTypeMultiSelect,
		FieldTypeCascadingSelect,
	}
}

// ParseFieldType parses either the short form ("select") or the full plugin key
// ("com.atlassian.jira.plugin.system.customfieldtypes:select") into a FieldType
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.TrimPrefix(strings.TrimSpace(s), CustomFieldTypePrefix))
	if !t.IsValid() {
		return "", goerr.New("invalid field type", goerr.V("type", s))
	}
	return t, nil
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeTextField,
		FieldTypeFloat,
		FieldTypeDateTime,
		FieldTypeSelect,
		FieldTypeMultiSelect,
		FieldTypeCascadingSelect:
		return true
	default:
		return false
	}
}

// Key returns the full Jira plugin key of the field type
func (t FieldType) Key() string {
	return CustomFieldTypePrefix + string(t)
}

// HasOptions reports whether the field type carries a list of options
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeMultiSelect, FieldTypeCascadingSelect:
		return true
	default:
		return false
	}
}

// IsCascading reports whether options of this type form a parent/child hierarchy
func (t FieldType) IsCascading() bool {
	return t == FieldTypeCascadingSelect
}

// QuestionType returns the question type used to normalize default answers of this field type.
// Returns an empty QuestionType for invalid field types.
func (t FieldType) QuestionType() QuestionType {
	switch t {
	case FieldTypeTextField:
		return QuestionTypeTextLine
	case FieldTypeFloat:
		return QuestionTypeNumber
	case FieldTypeDateTime:
		return QuestionTypeDateTime
	case FieldTypeSelect:
		return QuestionTypeSingleChoice
	case FieldTypeMultiSelect:
		return QuestionTypeMultipleChoice
	case FieldTypeCascadingSelect:
		return QuestionTypeCascadingChoice
	default:
		return ""
	}
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}

// SearcherKey expands a short searcher name ("exactnumber") into the full plugin key.
// Keys that already contain a plugin prefix are returned unchanged.
func SearcherKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ":") {
		return s
	}
	return CustomFieldTypePrefix + s
}

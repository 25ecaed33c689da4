package config

import (
	"fmt"
	"slices"

	"github.com/secmon-lab/jsmconf/pkg/domain/types"
)

// FieldOption represents an option of a select, multi-select or cascading field.
// A non-empty ParentValue marks a child option of a cascading field.
type FieldOption struct {
	Value       string
	ParentValue string
}

// IsChild reports whether the option is a cascading child option
func (o FieldOption) IsChild() bool {
	return o.ParentValue != ""
}

// DefaultValue is the requested default of a field. Which member is meaningful
// depends on the field type: Text for textfield, datetime and select, Number
// for float, Choices for multiselect and cascadingselect.
type DefaultValue struct {
	Text    string
	Number  float64
	Choices []string
}

// FieldDefinition is an immutable custom field template
type FieldDefinition struct {
	Name         string
	Description  string
	Type         types.FieldType
	SearcherKey  string
	Options      []FieldOption
	DefaultValue *DefaultValue
}

// Instance returns a deep copy of the template renamed to "<name>_<n>"
func (d FieldDefinition) Instance(n int) FieldDefinition {
	inst := d
	inst.Name = fmt.Sprintf("%s_%d", d.Name, n)
	inst.Options = slices.Clone(d.Options)
	if d.DefaultValue != nil {
		dv := *d.DefaultValue
		dv.Choices = slices.Clone(d.DefaultValue.Choices)
		inst.DefaultValue = &dv
	}
	return inst
}

// HasOptions reports whether the template defines at least one option
func (d FieldDefinition) HasOptions() bool {
	return len(d.Options) > 0
}

// FieldSchema holds the set of templates provisioned by one apply
type FieldSchema struct {
	Fields []FieldDefinition
}

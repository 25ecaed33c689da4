package model

import (
	"encoding/json"

	"github.com/secmon-lab/jsmconf/pkg/domain/types"
)

// ChildOption is an option nested under a cascading parent option
type ChildOption struct {
	Value string `json:"value"`
	ID    string `json:"id"`
}

// RemoteOption is an option as assigned by Jira. Flat fields use Value/ID;
// cascading fields use the parent_* members and ChildOptions.
type RemoteOption struct {
	Value string `json:"value,omitempty"`
	ID    string `json:"id,omitempty"`

	ParentOptionValue string        `json:"parent_option_value,omitempty"`
	ParentOptionID    string        `json:"parent_option_id,omitempty"`
	ChildOptions      []ChildOption `json:"child_options,omitempty"`
}

// IsCascading reports whether the option uses the cascading shape
func (o RemoteOption) IsCascading() bool {
	return o.ParentOptionID != ""
}

// RemoteField is the snapshot of a custom field created in Jira
type RemoteField struct {
	ID        types.FieldID   `json:"id"`
	ContextID string          `json:"context_id"`
	Type      types.FieldType `json:"type,omitempty"`
	Options   []RemoteOption  `json:"options"`
}

// MarshalJSON encodes the option in its flat ({value, id}) or cascading
// ({parent_option_value, parent_option_id, child_options}) shape
func (o RemoteOption) MarshalJSON() ([]byte, error) {
	if o.IsCascading() {
		children := o.ChildOptions
		if children == nil {
			children = []ChildOption{}
		}
		return json.Marshal(struct {
			ParentOptionValue string        `json:"parent_option_value"`
			ParentOptionID    string        `json:"parent_option_id"`
			ChildOptions      []ChildOption `json:"child_options"`
		}{o.ParentOptionValue, o.ParentOptionID, children})
	}

	return json.Marshal(struct {
		Value string `json:"value"`
		ID    string `json:"id"`
	}{o.Value, o.ID})
}

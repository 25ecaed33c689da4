package jira

import (
	"bytes"
	"context"
	"strconv"
)

// Service provides the subset of the Jira Cloud REST API v3 used to manage custom fields
type Service interface {
	// CreateField creates a custom field. Jira answers 201 on success.
	CreateField(ctx context.Context, req *CreateFieldRequest) (*Field, error)

	// DeleteField deletes a custom field by ID
	DeleteField(ctx context.Context, fieldID string) error

	// SearchFields returns one page of fields matching query
	SearchFields(ctx context.Context, query string, startAt, maxResults int) (*FieldPage, error)

	// ListContexts returns the contexts of a custom field
	ListContexts(ctx context.Context, fieldID string) ([]*FieldContext, error)

	// CreateContext creates a context for a custom field. Jira answers 201 on success.
	CreateContext(ctx context.Context, fieldID string, req *CreateContextRequest) (*FieldContext, error)

	// CreateOptions adds options to a field context and returns the options Jira assigned
	CreateOptions(ctx context.Context, fieldID, contextID string, options []*OptionInput) ([]*CustomFieldOption, error)

	// ListOptions returns every option of a field context, parents and children alike
	ListOptions(ctx context.Context, fieldID, contextID string) ([]*CustomFieldOption, error)

	// SetDefaultValues sets the default values of field contexts. Jira answers 204 on success.
	SetDefaultValues(ctx context.Context, fieldID string, values []*DefaultValue) error

	// GetDefaultValues returns the default values of every context of a field
	GetDefaultValues(ctx context.Context, fieldID string) ([]*DefaultValue, error)
}

// Default value type tags used on the wire
const (
	DefaultTypeTextField  = "textfield"
	DefaultTypeFloat      = "float"
	DefaultTypeDatePicker = "datetimepicker"
	DefaultTypeSingle     = "option.single"
	DefaultTypeMultiple   = "option.multiple"
	DefaultTypeCascading  = "option.cascading"
)

// CreateFieldRequest is the body of POST /field
type CreateFieldRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	SearcherKey string `json:"searcherKey,omitempty"`
}

// Field is a custom field as returned by Jira
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldPage is a page of the field search endpoint
type FieldPage struct {
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Total      int      `json:"total"`
	IsLast     bool     `json:"isLast"`
	Values     []*Field `json:"values"`
}

// CreateContextRequest is the body of POST /field/{id}/context
type CreateContextRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProjectIDs   []string `json:"projectIds"`
	IssueTypeIDs []string `json:"issueTypeIds"`
}

// FieldContext is a custom field context
type FieldContext struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// OptionInput is an option to create. ParentID is set for cascading child options.
type OptionInput struct {
	Value    string `json:"value"`
	ParentID string `json:"optionId,omitempty"`
}

// CustomFieldOption is a context option. ParentID is set for cascading child options.
type CustomFieldOption struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	ParentID string `json:"optionId,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// IsChild reports whether the option is a cascading child option
func (o *CustomFieldOption) IsChild() bool {
	return o.ParentID != ""
}

// DefaultValue is one entry of the defaultValues list of a field
type DefaultValue struct {
	Type              string   `json:"type"`
	ContextID         string   `json:"contextId,omitempty"`
	Text              *string  `json:"text,omitempty"`
	Number            *Number  `json:"number,omitempty"`
	DateTime          *string  `json:"dateTime,omitempty"`
	OptionID          string   `json:"optionId,omitempty"`
	OptionIDs         []string `json:"optionIds,omitempty"`
	CascadingOptionID string   `json:"cascadingOptionId,omitempty"`
}

// Number is a numeric default value. Jira has been observed to return it either
// as a JSON number or as a quoted string, so both forms are accepted.
type Number float64

// MarshalJSON encodes the number as a JSON number
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

// UnmarshalJSON decodes a JSON number or a quoted numeric string
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// String formats the number without trailing zeros
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

type optionsRequest struct {
	Options []*OptionInput `json:"options"`
}

type optionsResponse struct {
	Options []*CustomFieldOption `json:"options"`
}

type optionPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	IsLast     bool      `json:"isLast"`
	Values     []*CustomFieldOption `json:"values"`
}

type contextPage struct {
	Values []*FieldContext `json:"values"`
}

type defaultValuesBody struct {
	DefaultValues []*DefaultValue `json:"defaultValues,omitempty"`
	Values        []*DefaultValue `json:"values,omitempty"`
}

type pageParams struct {
	Query      string `url:"query,omitempty"`
	StartAt    int    `url:"startAt"`
	MaxResults int    `url:"maxResults"`
}

package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrMissingName        = goerr.New("name is required")
	ErrInvalidFieldType   = goerr.New("invalid field type")
	ErrDuplicateFieldName = goerr.New("duplicate field name")
	ErrInvalidDefault     = goerr.New("default value does not match field type")
	ErrInvalidOption      = goerr.New("invalid option")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	FieldNameKey   = "field_name"
	FieldTypeKey   = "field_type"
	FieldIndexKey  = "field_index"
	OptionIndexKey = "option_index"
	DefaultKey     = "default"
)

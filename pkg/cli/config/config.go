package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/jsmconf/pkg/domain/model/config"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
)

//go:embed fields.toml
var defaultFieldsTOML []byte

// FieldsFile represents a TOML field template file
type FieldsFile struct {
	Fields []Field `toml:"fields"`
}

// Field represents one custom field template
type Field struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Type        string   `toml:"type"`
	SearcherKey string   `toml:"searcher_key"`
	Default     any      `toml:"default"`
	Options     []Option `toml:"options"`
}

// Option represents an option of a choice field. Parent is set for cascading children.
type Option struct {
	Value  string `toml:"value"`
	Parent string `toml:"parent"`
}

// toDefinition checks presence and shape of the template and converts it into a FieldDefinition
func (f *Field) toDefinition() (domainConfig.FieldDefinition, error) {
	if strings.TrimSpace(f.Name) == "" {
		return domainConfig.FieldDefinition{}, goerr.Wrap(ErrMissingName, "field name is required")
	}

	fieldType, err := types.ParseFieldType(f.Type)
	if err != nil {
		return domainConfig.FieldDefinition{}, goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
			goerr.V(FieldNameKey, f.Name),
			goerr.V(FieldTypeKey, f.Type))
	}

	def := domainConfig.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        fieldType,
		SearcherKey: f.SearcherKey,
	}

	for i, opt := range f.Options {
		if opt.Value == "" {
			return def, goerr.Wrap(ErrInvalidOption, "option value is required",
				goerr.V(FieldNameKey, f.Name),
				goerr.V(OptionIndexKey, i))
		}
		if opt.Parent != "" && !fieldType.IsCascading() {
			return def, goerr.Wrap(ErrInvalidOption, "only cascading select options can have a parent",
				goerr.V(FieldNameKey, f.Name),
				goerr.V(OptionIndexKey, i))
		}
		def.Options = append(def.Options, domainConfig.FieldOption{Value: opt.Value, ParentValue: opt.Parent})
	}

	if len(def.Options) > 0 && !fieldType.HasOptions() {
		return def, goerr.Wrap(ErrInvalidOption, "field type does not take options",
			goerr.V(FieldNameKey, f.Name),
			goerr.V(FieldTypeKey, fieldType))
	}

	if f.Default != nil {
		dv, err := parseDefault(fieldType, f.Default)
		if err != nil {
			return def, goerr.Wrap(err, "invalid default value",
				goerr.V(FieldNameKey, f.Name),
				goerr.V(FieldTypeKey, fieldType),
				goerr.V(DefaultKey, f.Default))
		}
		def.DefaultValue = dv
	}

	return def, nil
}

func parseDefault(fieldType types.FieldType, raw any) (*domainConfig.DefaultValue, error) {
	switch fieldType {
	case types.FieldTypeTextField, types.FieldTypeDateTime, types.FieldTypeSelect:
		s, ok := raw.(string)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidDefault, "string expected")
		}
		return &domainConfig.DefaultValue{Text: s}, nil

	case types.FieldTypeFloat:
		switch v := raw.(type) {
		case int64:
			return &domainConfig.DefaultValue{Number: float64(v)}, nil
		case float64:
			return &domainConfig.DefaultValue{Number: v}, nil
		default:
			return nil, goerr.Wrap(ErrInvalidDefault, "number expected")
		}

	case types.FieldTypeMultiSelect:
		choices, err := stringList(raw)
		if err != nil {
			return nil, err
		}
		if len(choices) == 0 {
			return nil, goerr.Wrap(ErrInvalidDefault, "at least one value expected")
		}
		return &domainConfig.DefaultValue{Choices: choices}, nil

	case types.FieldTypeCascadingSelect:
		choices, err := stringList(raw)
		if err != nil {
			return nil, err
		}
		if len(choices) < 1 || len(choices) > 2 {
			return nil, goerr.Wrap(ErrInvalidDefault, "[parent] or [parent, child] expected")
		}
		return &domainConfig.DefaultValue{Choices: choices}, nil

	default:
		return nil, goerr.Wrap(ErrInvalidFieldType, "no default value for field type")
	}
}

// stringList accepts a single string or an array of strings
func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, goerr.Wrap(ErrInvalidDefault, "array of strings expected", goerr.V("item", fmt.Sprint(item)))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, goerr.Wrap(ErrInvalidDefault, "string or array of strings expected")
	}
}

// Validate checks every template and rejects duplicate names
func (c *FieldsFile) Validate() error {
	_, err := c.ToFieldSchema()
	return err
}

// ToFieldSchema converts the file into a validated domain FieldSchema
func (c *FieldsFile) ToFieldSchema() (*domainConfig.FieldSchema, error) {
	if len(c.Fields) == 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "at least one field is required")
	}

	schema := &domainConfig.FieldSchema{}
	names := make(map[string]bool)

	for i := range c.Fields {
		def, err := c.Fields[i].toDefinition()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid field", goerr.V(FieldIndexKey, i))
		}
		if names[def.Name] {
			return nil, goerr.Wrap(ErrDuplicateFieldName, "field names must be unique",
				goerr.V(FieldNameKey, def.Name),
				goerr.V(FieldIndexKey, i))
		}
		names[def.Name] = true
		schema.Fields = append(schema.Fields, def)
	}

	return schema, nil
}

// ParseFieldSchema parses TOML field templates
func ParseFieldSchema(data []byte) (*domainConfig.FieldSchema, error) {
	var file FieldsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML field templates", goerr.V("error", err.Error()))
	}
	return file.ToFieldSchema()
}

// LoadFieldSchema loads field templates from a TOML file. An empty path
// yields the built-in templates.
func LoadFieldSchema(path string) (*domainConfig.FieldSchema, error) {
	if path == "" {
		return DefaultFieldSchema()
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "field template file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read field template file", goerr.V(ConfigPathKey, path))
	}

	schema, err := ParseFieldSchema(data)
	if err != nil {
		return nil, goerr.Wrap(err, "field template validation failed", goerr.V(ConfigPathKey, path))
	}
	return schema, nil
}

// DefaultFieldSchema returns the built-in field templates
func DefaultFieldSchema() (*domainConfig.FieldSchema, error) {
	return ParseFieldSchema(defaultFieldsTOML)
}

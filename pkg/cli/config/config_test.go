package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/cli/config"
	"github.com/secmon-lab/jsmconf/pkg/domain/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadFieldSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid cascading field",
			content: `
[[fields]]
name = "region"
type = "com.atlassian.jira.plugin.system.customfieldtypes:cascadingselect"
searcher_key = "cascadingselectsearcher"
default = ["EMEA", "Paris"]

  [[fields.options]]
  value = "EMEA"

  [[fields.options]]
  value = "Paris"
  parent = "EMEA"
`,
		},
		{
			name: "valid multiselect with single string default",
			content: `
[[fields]]
name = "tags"
type = "multiselect"
default = "a"

  [[fields.options]]
  value = "a"
`,
		},
		{
			name:    "empty file",
			content: ``,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "broken TOML",
			content: `[[fields]`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "missing name",
			content: `
[[fields]]
type = "textfield"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "unsupported type",
			content: `
[[fields]]
name = "owner"
type = "userpicker"
`,
			wantErr: config.ErrInvalidFieldType,
		},
		{
			name: "duplicate names",
			content: `
[[fields]]
name = "size"
type = "float"

[[fields]]
name = "size"
type = "textfield"
`,
			wantErr: config.ErrDuplicateFieldName,
		},
		{
			name: "float default must be a number",
			content: `
[[fields]]
name = "size"
type = "float"
default = "twenty"
`,
			wantErr: config.ErrInvalidDefault,
		},
		{
			name: "cascading default with three levels",
			content: `
[[fields]]
name = "region"
type = "cascadingselect"
default = ["a", "b", "c"]
`,
			wantErr: config.ErrInvalidDefault,
		},
		{
			name: "multiselect default with empty list",
			content: `
[[fields]]
name = "tags"
type = "multiselect"
default = []
`,
			wantErr: config.ErrInvalidDefault,
		},
		{
			name: "option on text field",
			content: `
[[fields]]
name = "path"
type = "textfield"

  [[fields.options]]
  value = "x"
`,
			wantErr: config.ErrInvalidOption,
		},
		{
			name: "parent on select option",
			content: `
[[fields]]
name = "fs"
type = "select"

  [[fields.options]]
  value = "x"
  parent = "y"
`,
			wantErr: config.ErrInvalidOption,
		},
		{
			name: "empty option value",
			content: `
[[fields]]
name = "fs"
type = "select"

  [[fields.options]]
  value = ""
`,
			wantErr: config.ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := config.LoadFieldSchema(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Required()
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.A(t, schema.Fields).Length(1)
		})
	}
}

func TestLoadFieldSchema_Cascading(t *testing.T) {
	path := writeConfig(t, `
[[fields]]
name = "region"
type = "cascadingselect"
default = ["EMEA", "Paris"]

  [[fields.options]]
  value = "EMEA"

  [[fields.options]]
  value = "Paris"
  parent = "EMEA"
`)

	schema, err := config.LoadFieldSchema(path)
	gt.NoError(t, err).Required()

	f := schema.Fields[0]
	gt.Value(t, f.Type).Equal(types.FieldTypeCascadingSelect)
	gt.A(t, f.Options).Length(2)
	gt.B(t, f.Options[0].IsChild()).False()
	gt.B(t, f.Options[1].IsChild()).True()
	gt.S(t, f.Options[1].ParentValue).Equal("EMEA")
	gt.Value(t, f.DefaultValue).NotNil().Required()
	gt.A(t, f.DefaultValue.Choices).Equal([]string{"EMEA", "Paris"})
}

func TestLoadFieldSchema_NotFound(t *testing.T) {
	_, err := config.LoadFieldSchema(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Required()
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestDefaultFieldSchema(t *testing.T) {
	schema, err := config.LoadFieldSchema("")
	gt.NoError(t, err).Required()
	gt.A(t, schema.Fields).Length(3)

	size := schema.Fields[0]
	gt.S(t, size.Name).Equal("vm_provisioning_disk_size")
	gt.Value(t, size.Type).Equal(types.FieldTypeFloat)
	gt.S(t, size.SearcherKey).Equal("exactnumber")
	gt.Value(t, size.DefaultValue).NotNil().Required()
	gt.Value(t, size.DefaultValue.Number).Equal(20.0)

	fs := schema.Fields[1]
	gt.Value(t, fs.Type).Equal(types.FieldTypeSelect)
	gt.A(t, fs.Options).Length(7)
	gt.S(t, fs.DefaultValue.Text).Equal("NFS")

	mount := schema.Fields[2]
	gt.Value(t, mount.Type).Equal(types.FieldTypeTextField)
	gt.S(t, mount.DefaultValue.Text).Equal("/mnt/data")
	gt.B(t, mount.HasOptions()).False()
}

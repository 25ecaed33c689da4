package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/cli/config"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/repository/file"
)

func TestSlack_Configure(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		opts, err := config.NewSlackForTest("", "").Configure()
		gt.NoError(t, err)
		gt.A(t, opts).Length(0)
	})

	t.Run("enabled", func(t *testing.T) {
		s := config.NewSlackForTest("xoxb-test", "C0123")
		gt.B(t, s.IsConfigured()).True()
		opts, err := s.Configure()
		gt.NoError(t, err)
		gt.A(t, opts).Length(1)
	})

	t.Run("channel without token", func(t *testing.T) {
		_, err := config.NewSlackForTest("", "C0123").Configure()
		gt.Error(t, err).Required()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestJira_Configure(t *testing.T) {
	t.Run("domain", func(t *testing.T) {
		svc, err := config.NewJiraForTest("example.atlassian.net", "bot@example.com", "token", "").Configure()
		gt.NoError(t, err)
		gt.Value(t, svc).NotNil()
	})

	t.Run("base url only", func(t *testing.T) {
		svc, err := config.NewJiraForTest("", "bot@example.com", "token", "http://127.0.0.1:8080/rest/api/3").Configure()
		gt.NoError(t, err)
		gt.Value(t, svc).NotNil()
	})

	t.Run("missing domain", func(t *testing.T) {
		_, err := config.NewJiraForTest("", "bot@example.com", "token", "").Configure()
		gt.Error(t, err).Required()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestJira_LogValueHidesToken(t *testing.T) {
	v := config.NewJiraForTest("example.atlassian.net", "bot", "very-secret", "").LogValue()
	gt.S(t, v.String()).NotContains("very-secret")
}

func TestState_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("file backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		repo, closer, err := config.NewStateForTest(config.StateBackendFile, path).Configure(ctx)
		gt.NoError(t, err).Required()
		defer closer()

		rec := model.NewStateRecord()
		rec.CustomFields["disk_1"] = &model.RemoteField{ID: "customfield_1"}
		gt.NoError(t, repo.Save(ctx, rec))

		loaded, err := file.New(path).Load(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, loaded.Names()).Equal([]string{"disk_1"})
	})

	t.Run("gcs without bucket", func(t *testing.T) {
		_, _, err := config.NewStateForTest(config.StateBackendGCS, "").Configure(ctx)
		gt.Error(t, err).Required()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("firestore without project", func(t *testing.T) {
		_, _, err := config.NewStateForTest(config.StateBackendFirestore, "").Configure(ctx)
		gt.Error(t, err).Required()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := config.NewStateForTest("s3", "").Configure(ctx)
		gt.Error(t, err).Required()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

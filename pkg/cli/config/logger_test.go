package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/cli/config"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseLogLevel(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestLogger_Configure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		closer, err := config.NewLoggerForTest("info", "json", path, false).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Info("hello", "api_token_len", 3)
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains(`"msg":"hello"`)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr", false).Configure()
		gt.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "console", "stderr", false).Configure()
		gt.Error(t, err)
	})
}

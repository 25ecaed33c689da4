package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging
type Logger struct {
	level   string
	format  string
	output  string
	verbose bool
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Destination: &x.level,
			Sources:     cli.EnvVars("JSMCONF_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Category:    "Logging",
			Value:       "console",
			Destination: &x.format,
			Sources:     cli.EnvVars("JSMCONF_LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stderr, stdout or a file path)",
			Category:    "Logging",
			Value:       "stderr",
			Destination: &x.output,
			Sources:     cli.EnvVars("JSMCONF_LOG_OUTPUT"),
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Enable detailed messages (same as --log-level debug)",
			Category:    "Logging",
			Destination: &x.verbose,
			Sources:     cli.EnvVars("JSMCONF_VERBOSE"),
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
		slog.Bool("verbose", x.verbose),
	)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.New("invalid log level", goerr.V("level", s))
	}
}

// Configure builds the logger, installs it as the default and returns a closer for the output
func (x *Logger) Configure() (func(), error) {
	level, err := parseLogLevel(x.level)
	if err != nil {
		return nil, err
	}
	if x.verbose {
		level = slog.LevelDebug
	}

	closer := func() {}
	var w io.Writer
	switch x.output {
	case "stderr", "":
		w = os.Stderr
	case "stdout", "-":
		w = os.Stdout
	default:
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.OpenFile(x.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		w = f
		closer = func() {
			_ = f.Close()
		}
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("APIToken"),
		masq.WithFieldName("BotToken"),
		masq.WithFieldName("Authorization"),
	)

	var handler slog.Handler
	switch x.format {
	case "console", "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(level == slog.LevelDebug),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   level == slog.LevelDebug,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return nil, goerr.New("invalid log format", goerr.V("format", x.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}

package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/repository/file"
	"github.com/secmon-lab/jsmconf/pkg/repository/firestore"
	"github.com/secmon-lab/jsmconf/pkg/repository/gcs"
	"github.com/secmon-lab/jsmconf/pkg/utils/errutil"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// State backends
const (
	StateBackendFile      = "file"
	StateBackendGCS       = "gcs"
	StateBackendFirestore = "firestore"
)

// State holds CLI flags for the state record backend
type State struct {
	backend     string
	path        string
	bucket      string
	object      string
	projectID   string
	databaseID  string
	name        string
	credentials string
}

func (x *State) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "state-backend",
			Usage:       "State backend type (file, gcs or firestore)",
			Category:    "State",
			Value:       StateBackendFile,
			Destination: &x.backend,
			Sources:     cli.EnvVars("JSMCONF_STATE_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "state-file",
			Aliases:     []string{"f"},
			Usage:       "Path to state file (file backend)",
			Category:    "State",
			Value:       file.DefaultPath,
			Destination: &x.path,
			Sources:     cli.EnvVars("JSMCONF_STATE_FILE"),
		},
		&cli.StringFlag{
			Name:        "state-gcs-bucket",
			Usage:       "Cloud Storage bucket (gcs backend)",
			Category:    "State",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("JSMCONF_STATE_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "state-gcs-object",
			Usage:       "Cloud Storage object name (gcs backend)",
			Category:    "State",
			Value:       gcs.DefaultObject,
			Destination: &x.object,
			Sources:     cli.EnvVars("JSMCONF_STATE_GCS_OBJECT"),
		},
		&cli.StringFlag{
			Name:        "state-firestore-project-id",
			Usage:       "Firestore Project ID (firestore backend)",
			Category:    "State",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("JSMCONF_STATE_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "state-firestore-database-id",
			Usage:       "Firestore Database ID (firestore backend)",
			Category:    "State",
			Destination: &x.databaseID,
			Sources:     cli.EnvVars("JSMCONF_STATE_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "state-name",
			Usage:       "State document name (firestore backend)",
			Category:    "State",
			Value:       firestore.DefaultDocument,
			Destination: &x.name,
			Sources:     cli.EnvVars("JSMCONF_STATE_NAME"),
		},
		&cli.StringFlag{
			Name:        "google-credentials",
			Usage:       "Path to a Google Cloud credentials JSON file (default: application default credentials)",
			Category:    "State",
			Destination: &x.credentials,
			Sources:     cli.EnvVars("JSMCONF_GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}
}

func (x State) LogValue() slog.Value {
	switch x.backend {
	case StateBackendGCS:
		return slog.GroupValue(
			slog.String("backend", x.backend),
			slog.String("bucket", x.bucket),
			slog.String("object", x.object),
		)
	case StateBackendFirestore:
		return slog.GroupValue(
			slog.String("backend", x.backend),
			slog.String("project_id", x.projectID),
			slog.String("database_id", x.databaseID),
			slog.String("name", x.name),
		)
	default:
		return slog.GroupValue(
			slog.String("backend", x.backend),
			slog.String("path", x.path),
		)
	}
}

func (x *State) clientOptions() []option.ClientOption {
	if x.credentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(x.credentials)}
}

// Configure initializes the state repository of the configured backend.
// The returned function releases the backend client and must be called by the caller.
func (x *State) Configure(ctx context.Context) (interfaces.StateRepository, func(), error) {
	switch x.backend {
	case StateBackendFile, "":
		logging.From(ctx).Debug("Using state file", "path", x.path)
		return file.New(x.path), func() {}, nil

	case StateBackendGCS:
		if x.bucket == "" {
			return nil, nil, goerr.Wrap(ErrInvalidConfig, "--state-gcs-bucket is required when using gcs backend")
		}
		repo, err := gcs.New(ctx, x.bucket, x.object, x.clientOptions()...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize gcs state repository")
		}
		logging.From(ctx).Debug("Using Cloud Storage state", "bucket", x.bucket, "object", x.object)
		return repo, func() {
			if err := repo.Close(); err != nil {
				errutil.Handle(ctx, err, "failed to close Cloud Storage client")
			}
		}, nil

	case StateBackendFirestore:
		if x.projectID == "" {
			return nil, nil, goerr.Wrap(ErrInvalidConfig, "--state-firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, x.projectID, x.databaseID, x.clientOptions(), firestore.WithDocument(x.name))
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize firestore state repository")
		}
		logging.From(ctx).Debug("Using Firestore state",
			"project_id", x.projectID,
			"database_id", x.databaseID,
			"name", x.name,
		)
		return repo, func() {
			if err := repo.Close(); err != nil {
				errutil.Handle(ctx, err, "failed to close Firestore client")
			}
		}, nil

	default:
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "invalid state backend", goerr.V("backend", x.backend))
	}
}

package file

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
)

// DefaultPath is the state file used when no path is given
const DefaultPath = "jsm_state.json"

// StateRepository stores the state record as a JSON file
type StateRepository struct {
	path string
}

var _ interfaces.StateRepository = &StateRepository{}

// New creates a file backed state repository. An empty path selects DefaultPath.
func New(path string) *StateRepository {
	if path == "" {
		path = DefaultPath
	}
	return &StateRepository{path: path}
}

// Path returns the state file path
func (r *StateRepository) Path() string {
	return r.path
}

func (r *StateRepository) Load(ctx context.Context) (*model.StateRecord, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrStateNotFound, "state file not found", goerr.V("path", r.path))
		}
		return nil, goerr.Wrap(err, "failed to read state file", goerr.V("path", r.path))
	}

	rec, err := model.UnmarshalState(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse state file", goerr.V("path", r.path))
	}
	return rec, nil
}

func (r *StateRepository) Save(ctx context.Context, rec *model.StateRecord) error {
	data, err := model.MarshalState(rec)
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write state file", goerr.V("path", r.path))
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove state file", goerr.V("path", r.path))
	}
	return nil
}

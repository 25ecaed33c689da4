package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
)

// StateRepository keeps the encoded state record in process memory
type StateRepository struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

var _ interfaces.StateRepository = &StateRepository{}

// New creates an empty in-memory state repository
func New() *StateRepository {
	return &StateRepository{}
}

func (r *StateRepository) Load(ctx context.Context) (*model.StateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return nil, goerr.Wrap(model.ErrStateNotFound, "state not saved")
	}
	return model.UnmarshalState(r.data)
}

func (r *StateRepository) Save(ctx context.Context, rec *model.StateRecord) error {
	data, err := model.MarshalState(rec)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	r.saves++
	return nil
}

func (r *StateRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = nil
	return nil
}

// Saved returns how many times Save succeeded
func (r *StateRepository) Saved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

package interfaces

import (
	"context"

	"github.com/secmon-lab/jsmconf/pkg/domain/model"
)

// StateRepository persists the state record between invocations.
// Implementations assume a single writer and do not lock.
type StateRepository interface {
	// Load returns the saved record, or an error wrapping model.ErrStateNotFound when nothing was saved
	Load(ctx context.Context) (*model.StateRecord, error)

	// Save overwrites the saved record
	Save(ctx context.Context, rec *model.StateRecord) error

	// Delete removes the saved record. Deleting a missing record is not an error.
	Delete(ctx context.Context) error
}

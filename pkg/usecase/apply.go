package usecase

import (
	"context"
	"errors"
	"maps"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/domain/model/config"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// ApplyReport summarizes an Apply run. Destroyed is nil when there was no prior state.
type ApplyReport struct {
	Destroyed *DestroyReport
	Created   *CreateResult
}

// DestroyReport summarizes a Destroy run
type DestroyReport struct {
	Result       *DeleteResult
	StateDeleted bool
}

// Apply tears down the fields of the previous run, then creates iterations copies
// of the templates and records them as the new state. The state is saved even when
// creation was interrupted, so that every created field can be destroyed later.
func (uc *UseCases) Apply(ctx context.Context, templates []config.FieldDefinition, iterations int) (*ApplyReport, error) {
	if iterations <= 0 {
		return nil, goerr.Wrap(ErrInvalidIterations, "invalid iterations", goerr.V(IterationsKey, iterations))
	}

	report := &ApplyReport{}

	destroyed, err := uc.destroy(ctx)
	if err != nil {
		return nil, err
	}
	report.Destroyed = destroyed

	if destroyed != nil && len(destroyed.Result.NotDeleted) > 0 {
		rec := &model.StateRecord{CustomFields: destroyed.Result.NotDeleted}
		return report, goerr.Wrap(ErrPendingDeletion, "previous fields could not be deleted",
			goerr.V(RemainingKey, rec.Names()))
	}

	created, createErr := uc.CreateFields(ctx, templates, iterations)
	report.Created = created

	if created != nil {
		rec := &model.StateRecord{CustomFields: created.Fields}
		if err := uc.state.Save(context.WithoutCancel(ctx), rec); err != nil {
			return report, goerr.Wrap(err, "failed to save state", goerr.V("created", created.Names()))
		}
		logging.From(ctx).Info("State saved", "fields", len(created.Fields))
	}

	if createErr != nil {
		return report, createErr
	}

	uc.notify(ctx, applyMessage(report))
	return report, nil
}

// Destroy deletes every field recorded in the state. The state is removed once all
// fields are gone and otherwise keeps the entries that still exist remotely.
// A missing state is not an error: the report is nil.
func (uc *UseCases) Destroy(ctx context.Context) (*DestroyReport, error) {
	report, err := uc.destroy(ctx)
	if err != nil {
		return report, err
	}
	if report != nil {
		uc.notify(ctx, destroyMessage(report))
	}
	return report, nil
}

func (uc *UseCases) destroy(ctx context.Context) (*DestroyReport, error) {
	logger := logging.From(ctx)

	rec, err := uc.state.Load(ctx)
	if errors.Is(err, model.ErrStateNotFound) {
		logger.Info("No state found, nothing to destroy")
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load state")
	}

	remaining := maps.Clone(rec.CustomFields)
	checkpoint := func(ctx context.Context, name string) error {
		delete(remaining, name)
		if err := uc.state.Save(ctx, &model.StateRecord{CustomFields: remaining}); err != nil {
			return goerr.Wrap(err, "failed to save state", goerr.V(FieldNameKey, name))
		}
		return nil
	}

	report := &DestroyReport{
		Result: uc.DeleteFields(ctx, rec.CustomFields, WithCheckpoint(checkpoint)),
	}

	// Progress has to reach the state even when ctx is done
	saveCtx := context.WithoutCancel(ctx)

	if len(report.Result.NotDeleted) == 0 {
		if err := uc.state.Delete(saveCtx); err != nil {
			return report, goerr.Wrap(err, "failed to delete state")
		}
		report.StateDeleted = true
		logger.Info("State deleted")
		return report, nil
	}

	if err := uc.state.Save(saveCtx, &model.StateRecord{CustomFields: report.Result.NotDeleted}); err != nil {
		return report, goerr.Wrap(err, "failed to save state", goerr.V(RemainingKey, len(report.Result.NotDeleted)))
	}

	if err := ctx.Err(); err != nil {
		return report, goerr.Wrap(err, "destroy interrupted", goerr.V(RemainingKey, len(report.Result.NotDeleted)))
	}

	return report, nil
}

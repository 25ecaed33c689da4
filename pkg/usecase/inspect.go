package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// Inspect returns the default answer of every recorded field, keyed by field name.
// Fields recorded without a type are skipped.
func (uc *UseCases) Inspect(ctx context.Context) (map[string]model.DefaultAnswer, error) {
	rec, err := uc.state.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load state")
	}

	answers := make(map[string]model.DefaultAnswer, len(rec.CustomFields))
	for _, name := range rec.Names() {
		field := rec.CustomFields[name]
		if field == nil || field.ID == "" {
			continue
		}

		qt := field.Type.QuestionType()
		if qt == "" {
			logging.From(ctx).Debug("Field type unknown, skipping", FieldNameKey, name, FieldIDKey, field.ID)
			continue
		}

		answers[name] = uc.DefaultAnswer(ctx, field.ID, qt)
	}

	return answers, nil
}

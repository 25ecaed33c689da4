package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
	"github.com/secmon-lab/jsmconf/pkg/utils/errutil"
	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// FieldRef identifies a remote custom field
type FieldRef struct {
	ID   string
	Name string
}

// CleanReport summarizes a Clean run. In dry-run mode Deleted is empty and
// Remaining equals Matched.
type CleanReport struct {
	Query     string
	DryRun    bool
	Matched   []FieldRef
	Deleted   []FieldRef
	Remaining []FieldRef
}

// Clean deletes every custom field whose name matches query, whether or not it is
// tracked by the state. It is meant for fields left behind by a lost state.
func (uc *UseCases) Clean(ctx context.Context, query string, dryRun bool) (*CleanReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, goerr.Wrap(ErrEmptyQuery, "cannot clean custom fields")
	}

	matched, err := uc.searchFields(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &CleanReport{
		Query:     query,
		DryRun:    dryRun,
		Matched:   matched,
		Deleted:   []FieldRef{},
		Remaining: []FieldRef{},
	}

	logger := logging.From(ctx)
	logger.Info("Custom fields matched", "query", query, "count", len(matched))

	for _, ref := range matched {
		if dryRun {
			report.Remaining = append(report.Remaining, ref)
			continue
		}

		if err := uc.jira.DeleteField(ctx, ref.ID); err != nil {
			errutil.Handle(ctx, err, "failed to delete custom field")
			report.Remaining = append(report.Remaining, ref)
			continue
		}

		logger.Info("Custom field deleted", FieldIDKey, ref.ID, FieldNameKey, ref.Name)
		report.Deleted = append(report.Deleted, ref)
	}

	if !dryRun {
		uc.notify(ctx, cleanMessage(report))
	}

	return report, nil
}

// searchFields walks the search result pages until a short or last page.
// A failure after the first page keeps what was collected so far.
func (uc *UseCases) searchFields(ctx context.Context, query string) ([]FieldRef, error) {
	refs := []FieldRef{}
	startAt := 0

	for {
		page, err := uc.jira.SearchFields(ctx, query, startAt, jira.DefaultPageSize)
		if err != nil {
			if startAt == 0 {
				return nil, goerr.Wrap(err, "failed to search custom fields", goerr.V("query", query))
			}
			errutil.Handle(ctx, err, "failed to search custom fields")
			break
		}

		for _, f := range page.Values {
			if f == nil || f.ID == "" {
				continue
			}
			refs = append(refs, FieldRef{ID: f.ID, Name: f.Name})
		}

		if page.IsLast || len(page.Values) < jira.DefaultPageSize {
			break
		}
		startAt += jira.DefaultPageSize
	}

	return refs, nil
}

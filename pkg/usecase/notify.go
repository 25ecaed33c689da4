package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/secmon-lab/jsmconf/pkg/utils/errutil"
	goslack "github.com/slack-go/slack"
)

// slackMessage is a run summary ready to post
type slackMessage struct {
	blocks []goslack.Block
	text   string
}

// notify posts msg to the configured Slack channel. Failures are only logged.
func (uc *UseCases) notify(ctx context.Context, msg slackMessage) {
	if uc.slack == nil || uc.slackChannel == "" {
		return
	}

	if _, err := uc.slack.PostMessage(ctx, uc.slackChannel, msg.blocks, msg.text); err != nil {
		errutil.Handle(ctx, err, "failed to post run summary to Slack")
	}
}

func applyMessage(report *ApplyReport) slackMessage {
	created, errs := 0, 0
	var names []string
	if report.Created != nil {
		created = len(report.Created.Fields)
		errs = len(report.Created.Errors)
		names = report.Created.Names()
	}

	summary := fmt.Sprintf("*Created:* %d  |  *Errors:* %d", created, errs)
	if report.Destroyed != nil {
		summary += fmt.Sprintf("  |  *Deleted beforehand:* %d", len(report.Destroyed.Result.Deleted))
	}

	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, "jsmconf apply", true, false),
		),
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, summary, false, false),
			nil, nil,
		),
	}
	if len(names) > 0 {
		blocks = append(blocks, goslack.NewContextBlock("",
			goslack.NewTextBlockObject(goslack.MarkdownType, codeList(names), false, false),
		))
	}

	return slackMessage{
		blocks: blocks,
		text:   fmt.Sprintf("jsmconf apply: %d field(s) created, %d error(s)", created, errs),
	}
}

func destroyMessage(report *DestroyReport) slackMessage {
	deleted := len(report.Result.Deleted)
	remaining := len(report.Result.NotDeleted)

	summary := fmt.Sprintf("*Deleted:* %d  |  *Not deleted:* %d", deleted, remaining)
	if report.StateDeleted {
		summary += "  |  state removed"
	}

	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, "jsmconf destroy", true, false),
		),
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, summary, false, false),
			nil, nil,
		),
	}

	return slackMessage{
		blocks: blocks,
		text:   fmt.Sprintf("jsmconf destroy: %d field(s) deleted, %d not deleted", deleted, remaining),
	}
}

func cleanMessage(report *CleanReport) slackMessage {
	summary := fmt.Sprintf("*Query:* `%s`  |  *Deleted:* %d  |  *Remaining:* %d",
		report.Query, len(report.Deleted), len(report.Remaining))

	blocks := []goslack.Block{
		goslack.NewHeaderBlock(
			goslack.NewTextBlockObject(goslack.PlainTextType, "jsmconf clean", true, false),
		),
		goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, summary, false, false),
			nil, nil,
		),
	}

	if len(report.Remaining) > 0 {
		refs := make([]string, len(report.Remaining))
		for i, ref := range report.Remaining {
			refs[i] = fmt.Sprintf("%s (%s)", ref.Name, ref.ID)
		}
		blocks = append(blocks, goslack.NewContextBlock("",
			goslack.NewTextBlockObject(goslack.MarkdownType, "Failed: "+codeList(refs), false, false),
		))
	}

	return slackMessage{
		blocks: blocks,
		text:   fmt.Sprintf("jsmconf clean %q: %d field(s) deleted, %d remaining", report.Query, len(report.Deleted), len(report.Remaining)),
	}
}

// codeList renders items as inline code, truncated to keep the block under Slack's limits
func codeList(items []string) string {
	const maxItems = 20

	shown := items
	if len(shown) > maxItems {
		shown = shown[:maxItems]
	}

	parts := make([]string, len(shown))
	for i, item := range shown {
		parts[i] = "`" + item + "`"
	}

	out := strings.Join(parts, " ")
	if len(items) > maxItems {
		out += fmt.Sprintf(" and %d more", len(items)-maxItems)
	}
	return out
}

package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/secmon-lab/jsmconf/pkg/usecase"
)

var (
	colorOK    = color.New(color.FgGreen, color.Bold)
	colorWarn  = color.New(color.FgYellow, color.Bold)
	colorError = color.New(color.FgRed, color.Bold)
	colorName  = color.New(color.FgCyan)
)

func printApplyReport(w io.Writer, report *usecase.ApplyReport) {
	if report == nil {
		return
	}
	if report.Destroyed != nil {
		printDestroyReport(w, report.Destroyed)
	}
	if report.Created == nil {
		return
	}

	_, _ = colorOK.Fprintf(w, "Created %d custom field(s)\n", len(report.Created.Fields))
	for _, name := range report.Created.Names() {
		field := report.Created.Fields[name]
		_, _ = fmt.Fprintf(w, "  + %s %s\n", colorName.Sprint(name), field.ID)
	}
	printFieldErrors(w, report.Created.Errors)
}

func printDestroyReport(w io.Writer, report *usecase.DestroyReport) {
	if report == nil {
		_, _ = fmt.Fprintln(w, "No state found, nothing to destroy")
		return
	}

	_, _ = colorOK.Fprintf(w, "Deleted %d custom field(s)\n", len(report.Result.Deleted))
	for _, name := range report.Result.Deleted {
		_, _ = fmt.Fprintf(w, "  - %s\n", colorName.Sprint(name))
	}

	if remaining := len(report.Result.NotDeleted); remaining > 0 {
		_, _ = colorWarn.Fprintf(w, "%d custom field(s) not deleted\n", remaining)
		names := make([]string, 0, remaining)
		for name := range report.Result.NotDeleted {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "  ! %s\n", colorName.Sprint(name))
		}
	}
	printFieldErrors(w, report.Result.Errors)

	if report.StateDeleted {
		_, _ = fmt.Fprintln(w, "State removed")
	}
}

func printCleanReport(w io.Writer, report *usecase.CleanReport) {
	if report == nil {
		return
	}
	if report.DryRun {
		_, _ = colorWarn.Fprintf(w, "Dry run: %d custom field(s) match %q\n", len(report.Matched), report.Query)
		for _, f := range report.Matched {
			_, _ = fmt.Fprintf(w, "  %s %s\n", colorName.Sprint(f.Name), f.ID)
		}
		return
	}

	_, _ = colorOK.Fprintf(w, "Deleted %d of %d custom field(s) matching %q\n",
		len(report.Deleted), len(report.Matched), report.Query)
	for _, f := range report.Remaining {
		_, _ = colorError.Fprintf(w, "  ! %s %s\n", f.Name, f.ID)
	}
}

func printFieldErrors(w io.Writer, errs []*usecase.FieldError) {
	if len(errs) == 0 {
		return
	}
	_, _ = colorError.Fprintf(w, "%d error(s)\n", len(errs))
	for _, e := range errs {
		_, _ = fmt.Fprintf(w, "  %s\n", e.Error())
	}
}

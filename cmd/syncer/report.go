package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"clickup_sync/internal/domain"
)

var rule = strings.Repeat("=", 60)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "Starting ClickUp Full Sync")
}

func printSummary(w io.Writer, stats *domain.SyncStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SYNC SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Spaces: %d\n", stats.Spaces)
	fmt.Fprintf(w, "Total Boards (Folders): %d\n", stats.Boards)
	fmt.Fprintf(w, "Total Sprints (Lists): %d\n", stats.Sprints)
	fmt.Fprintf(w, "Total Issues (Tasks): %d\n", stats.Issues)
	for _, res := range stats.Results {
		fmt.Fprintf(w, "Inserted into %s: %d of %d (%d skipped)\n",
			res.Table, res.Inserted, res.Attempted, len(res.Failures))
	}
}

func printSuccess(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "✓ SYNC COMPLETED SUCCESSFULLY!")
	fmt.Fprintln(w, rule)
}

// printFailure writes the error and, when one was recorded, the stack trace
// of its origin.
func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "\n✗ Sync failed: %v\n", err)

	var st stackTracer
	if errors.As(err, &st) {
		fmt.Fprintf(w, "%+v\n", st.StackTrace())
	}
}

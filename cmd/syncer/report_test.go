package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"clickup_sync/internal/domain"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &domain.SyncStats{
		Spaces:  1,
		Boards:  2,
		Sprints: 3,
		Issues:  4,
		Results: []domain.InsertResult{
			{Table: "board", Attempted: 2, Inserted: 1, Failures: []domain.RowFailure{{Key: "10"}}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "SYNC SUMMARY")
	assert.Contains(t, out, "Total Boards (Folders): 2")
	assert.Contains(t, out, "Total Sprints (Lists): 3")
	assert.Contains(t, out, "Total Issues (Tasks): 4")
	assert.Contains(t, out, "Inserted into board: 1 of 2 (1 skipped)")
}

func TestPrintSummary_ZeroCounts(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &domain.SyncStats{})

	assert.Contains(t, buf.String(), "Total Boards (Folders): 0")
	assert.Contains(t, buf.String(), "Total Issues (Tasks): 0")
}

func TestPrintFailure_WithStack(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("insert boards: %w", pkgerrors.WithStack(errors.New("commit: connection reset")))

	printFailure(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "✗ Sync failed: insert boards: commit: connection reset")
	assert.Contains(t, out, "TestPrintFailure_WithStack")
}

func TestPrintFailure_WithoutStack(t *testing.T) {
	var buf bytes.Buffer
	printFailure(&buf, errors.New("plain"))

	assert.Equal(t, "\n✗ Sync failed: plain\n", buf.String())
}

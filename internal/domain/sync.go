package domain

import (
	"fmt"
	"time"
)

// RowFailure records one destination row that could not be inserted.
// It never aborts a batch.
type RowFailure struct {
	Key   string
	Label string
	Err   error
}

func (f RowFailure) Error() string {
	return fmt.Sprintf("insert %q (%s): %v", f.Label, f.Key, f.Err)
}

func (f RowFailure) Unwrap() error {
	return f.Err
}

// InsertResult is the outcome of one batch insert.
type InsertResult struct {
	Table     string
	Attempted int
	Inserted  int
	Failures  []RowFailure
}

// SyncStats holds statistics about a sync run.
type SyncStats struct {
	StartedAt time.Time
	Spaces    int
	Boards    int
	Sprints   int
	Issues    int
	Results   []InsertResult
	Published bool
	Duration  time.Duration
}

// Failed counts rows skipped across all batches.
func (s *SyncStats) Failed() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Failures)
	}
	return n
}

// Inserted counts rows written across all batches.
func (s *SyncStats) Inserted() int {
	n := 0
	for _, r := range s.Results {
		n += r.Inserted
	}
	return n
}

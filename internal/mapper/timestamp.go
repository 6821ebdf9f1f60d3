package mapper

import (
	"time"

	"clickup_sync/internal/source/clickup"
)

// FromEpochMillis converts a ClickUp epoch-milliseconds value to a UTC
// timestamp truncated to whole seconds. Absent or non-integer values yield nil.
func FromEpochMillis(v clickup.Text) *time.Time {
	ms, ok := v.Int64()
	if !ok {
		return nil
	}
	t := time.Unix(ms/1000, 0).UTC()
	return &t
}

// fromEpochMillisOr is FromEpochMillis with a fallback for absent values.
func fromEpochMillisOr(v clickup.Text, fallback time.Time) time.Time {
	if t := FromEpochMillis(v); t != nil {
		return *t
	}
	return fallback
}

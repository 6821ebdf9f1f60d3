package utils

import "time"

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Unix returns the UTC time for sec seconds since the epoch.
func Unix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

package utils

import (
	"time"
)

// TimeNowUTC returns the current wall-clock time in UTC.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// PrettyDate formats t for human-facing alert messages.
func PrettyDate(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 15:04:05 MST")
}

// Package utils holds small shared helpers.
package utils

import "time"

// NowISO returns the current UTC time as an RFC3339 string, the timestamp
// representation used across the database and the backup envelope.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// FilenameStamp returns a compact local timestamp for file names.
func FilenameStamp() string {
	return time.Now().Format("20060102-150405")
}

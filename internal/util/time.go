package util

import "time"

// NowMillis returns the current time in milliseconds since Unix epoch.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FormatMillis formats milliseconds since epoch in a human-readable way.
func FormatMillis(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}

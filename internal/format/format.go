// Package format renders byte counts and timestamps for display.
package format

import (
	"fmt"
	"time"
)

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// ByteSize formats a byte count using binary (1024-based) units: plain
// bytes below 1 KB, two decimals from KB up.
func ByteSize(n int64) string {
	switch {
	case n < kib:
		return fmt.Sprintf("%d bytes", n)
	case n < mib:
		return fmt.Sprintf("%.2f KB", float64(n)/kib)
	case n < gib:
		return fmt.Sprintf("%.2f MB", float64(n)/mib)
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/gib)
	}
}

// timestampLayout renders e.g. "Aug 31, 2026, 05:12:09 PM".
const timestampLayout = "Jan 02, 2006, 03:04:05 PM"

// Timestamp formats a time for the metadata panel.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// TimestampMillis formats an epoch-millisecond value the same way.
func TimestampMillis(ms int64) string {
	return Timestamp(time.UnixMilli(ms))
}

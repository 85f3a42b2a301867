package main

import (
	"fmt"
	"time"
)

// formatLatency formats a duration into a human-readable string with
// appropriate units.
func formatLatency(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fμs", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// calculateTPS calculates tokens per second.
func calculateTPS(tokenCount int, duration time.Duration) int {
	if duration == 0 {
		return 0
	}
	return int(float64(tokenCount) / duration.Seconds())
}

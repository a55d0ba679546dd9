package app

import (
	"fmt"
	"time"
)

// ClusterTimeSpan reduces a duration to its largest time unit and
// renders it as a human readable string for the status page, e.g.
// "3 days" or "1 hour". Sub-minute spans always use the plural form.
func ClusterTimeSpan(d time.Duration) string {
	totalSeconds := int(d.Seconds())

	days := totalSeconds / 86400
	remainder := totalSeconds % 86400
	hours := remainder / 3600
	remainder = remainder % 3600
	minutes := remainder / 60
	seconds := remainder % 60

	switch {
	case days == 1:
		return "1 day"
	case days > 1:
		return fmt.Sprintf("%d days", days)
	case hours == 1:
		return "1 hour"
	case hours > 1:
		return fmt.Sprintf("%d hours", hours)
	case minutes == 1:
		return "1 minute"
	case minutes > 1:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}

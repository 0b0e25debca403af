package schedule

import (
	"fmt"
	"time"
)

// Countdown renders a remaining duration with two-unit precision, stepping
// down the ladder as the larger units drain:
//
//	>= 1 day    "D天H小时"
//	>= 1 hour   "H小时M分钟"
//	>= 1 minute "M分钟S秒"
//	else        "S秒"
//
// Negative durations render as "0秒".
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d天%d小时", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d小时%d分钟", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d分钟%d秒", minutes, seconds)
	default:
		return fmt.Sprintf("%d秒", seconds)
	}
}

// CountdownUntil renders the remaining time from now until at.
func CountdownUntil(at, now time.Time) string {
	return Countdown(at.Sub(now))
}

// Banner renders the upcoming-task line: the countdown with a trailing
// "后" (from now) suffix, then the task content.
func Banner(content string, at, now time.Time) string {
	return fmt.Sprintf("%s后: %s", CountdownUntil(at, now), content)
}

package utils

import (
	"fmt"
	"time"
)

// dayLayout is the calendar-day key format used by streak accounting.
const dayLayout = "2006-01-02"

// DayKey returns the calendar-day key for a timestamp.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// PrevDayKey returns the day key for the calendar day before t.
func PrevDayKey(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(dayLayout)
}

// DaysAgoKey returns the day key n calendar days before t.
func DaysAgoKey(t time.Time, n int) string {
	return t.AddDate(0, 0, -n).Format(dayLayout)
}

// FormatClock renders seconds as m:ss for timers.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TimeAgo returns a human-readable time-ago string for feed rows.
func TimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}
	if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "yesterday"
	}
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}

	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}

// Package datetime encodes form dates and times into the string formats each
// calendar platform expects. It is a textual transform: no timezone
// conversion happens here.
package datetime

import (
	"strings"

	"punktual/internal/model"
)

// Basic returns the iCalendar basic format used by Google and ICS:
// YYYYMMDDTHHMMSS, or YYYYMMDD for all-day events.
func Basic(date, clock string, allDay bool) string {
	d := strings.ReplaceAll(date, "-", "")
	if allDay {
		return d
	}
	return d + "T" + strings.ReplaceAll(Clock(clock), ":", "") + "00"
}

// Outlook returns YYYY-MM-DDTHH:MM:00.000Z. All-day events use midnight
// because the deep-link endpoint rejects date-only values.
func Outlook(date, clock string, allDay bool) string {
	if allDay {
		return date + "T00:00:00.000Z"
	}
	return date + "T" + Clock(clock) + ":00.000Z"
}

// Yahoo returns YYYYMMDDTHHMMSS assembled from the hour and minute
// fragments, or YYYYMMDD for all-day events.
func Yahoo(date, clock string, allDay bool) string {
	d := strings.ReplaceAll(date, "-", "")
	if allDay {
		return d
	}
	hour, minute := splitClock(Clock(clock))
	return d + "T" + hour + minute + "00"
}

// Clock turns "9:5", "09:05:30" or "" into HH:MM.
func Clock(clock string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = model.DefaultStartTime
	}
	hour, minute := splitClock(clock)
	return hour + ":" + minute
}

func splitClock(clock string) (string, string) {
	parts := strings.Split(clock, ":")
	hour := pad2(parts[0])
	minute := "00"
	if len(parts) > 1 {
		minute = pad2(parts[1])
	}
	return hour, minute
}

func pad2(s string) string {
	switch len(s) {
	case 0:
		return "00"
	case 1:
		return "0" + s
	default:
		return s[:2]
	}
}

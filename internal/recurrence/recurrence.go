// Package recurrence validates RRULE text attached to an event and previews
// the dates it produces.
package recurrence

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"punktual/internal/datetime"
	appLog "punktual/internal/log"
	"punktual/internal/model"
)

const (
	// DefaultLimit is the number of occurrences previewed when none is asked for.
	DefaultLimit = 5
	// MaxLimit caps previews so unbounded rules stay cheap.
	MaxLimit = 50
)

// Normalize parses an RRULE body (with or without the "RRULE:" prefix) and
// returns it in canonical form. ok is false for empty or invalid rules.
func Normalize(rule string) (string, bool) {
	body := strings.TrimSpace(rule)
	body = strings.TrimPrefix(body, "RRULE:")
	if body == "" {
		return "", false
	}

	opt, err := rrule.StrToROption(body)
	if err != nil {
		appLog.Debug("recurrence: dropping invalid rule", "rule", rule, "err", err)
		return "", false
	}
	return opt.RRuleString(), true
}

// Upcoming returns up to limit occurrence start times, beginning at the
// event start. Non-recurring events yield just their start. The event
// timezone is used when it loads; otherwise UTC.
func Upcoming(ev model.EventDescription, limit int) []time.Time {
	if !ev.Complete() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	ev = ev.Resolved()
	loc := resolveLocation(ev.Timezone)
	start, err := startTime(ev, loc)
	if err != nil {
		appLog.Debug("recurrence: unparseable start", "date", ev.StartDate, "time", ev.StartTime, "err", err)
		return nil
	}

	body, ok := Normalize(ev.Recurrence)
	if !ok {
		return []time.Time{start}
	}

	opt, err := rrule.StrToROption(body)
	if err != nil {
		return []time.Time{start}
	}
	opt.Dtstart = start
	if opt.Count == 0 || opt.Count > limit {
		opt.Count = limit
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		appLog.Debug("recurrence: rule rejected", "rule", body, "err", err)
		return []time.Time{start}
	}
	return r.All()
}

func startTime(ev model.EventDescription, loc *time.Location) (time.Time, error) {
	if ev.IsAllDay {
		return time.ParseInLocation("2006-01-02", ev.StartDate, loc)
	}
	return time.ParseInLocation("2006-01-02 15:04", ev.StartDate+" "+datetime.Clock(ev.StartTime), loc)
}

func resolveLocation(name string) *time.Location {
	if name == "" || name == model.DefaultTimezone {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Debug("recurrence: unknown timezone; using UTC", "name", name)
		return time.UTC
	}
	return loc
}

package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"

	appLog "punktual/internal/log"
	"punktual/internal/model"
)

// ErrNoEvent is returned when an ICS payload holds no VEVENT.
var ErrNoEvent = errors.New("ics: no VEVENT in payload")

var textUnescaper = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

// ParseEvent converts the first VEVENT of an ICS payload into an
// EventDescription suitable for prefilling the form. Wall-clock values are
// kept as written; nothing is converted between zones.
func ParseEvent(body []byte) (model.EventDescription, error) {
	var out model.EventDescription
	if len(bytes.TrimSpace(body)) == 0 {
		return out, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("ics: parse calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return out, ErrNoEvent
	}
	if len(events) > 1 {
		appLog.Debug("ics import: using first of several events", "event_count", len(events))
	}
	ve := events[0]

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.Recurrence = p.Value
	}

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return out, errors.New("ics: event has no DTSTART")
	}
	var allDay bool
	out.StartDate, out.StartTime, allDay = splitDateValue(start.Value, start.ICalParameters)
	out.IsAllDay = allDay
	out.Timezone = zoneOf(start.ICalParameters)

	if end := ve.GetProperty(ical.ComponentPropertyDtEnd); end != nil {
		out.EndDate, out.EndTime, _ = splitDateValue(end.Value, end.ICalParameters)
	}
	if out.IsAllDay {
		out.StartTime, out.EndTime = "", ""
	}

	return out, nil
}

// splitDateValue turns 20250704 or 20251225T143000[Z] into date and HH:MM.
func splitDateValue(v string, params map[string][]string) (date, clock string, allDay bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "Z")
	if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}

	datePart, timePart, hasTime := strings.Cut(v, "T")
	if !hasTime {
		allDay = true
	}
	if len(datePart) == 8 {
		date = datePart[:4] + "-" + datePart[4:6] + "-" + datePart[6:8]
	}
	if len(timePart) >= 4 {
		clock = timePart[:2] + ":" + timePart[2:4]
	}
	return date, clock, allDay
}

// zoneOf returns the TZID label; floating and UTC values both map to UTC.
func zoneOf(params map[string][]string) string {
	if tz, ok := params["TZID"]; ok && len(tz) > 0 && tz[0] != "" {
		return tz[0]
	}
	return model.DefaultTimezone
}

func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}

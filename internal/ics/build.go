package ics

import (
	"net/url"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"punktual/internal/datetime"
	"punktual/internal/model"
	"punktual/internal/recurrence"
)

const (
	// ProductID identifies generated documents.
	ProductID = "-//Punktual//Add to Calendar//EN"
	// UIDDomain is appended to generated UIDs.
	UIDDomain = "punktual.co"

	dataURIPrefix = "data:text/calendar;charset=utf8,"
	stampLayout   = "20060102T150405Z"
)

// Document builds a single-event VCALENDAR body with CRLF line endings.
// Missing description and location become empty-valued lines.
func Document(ev model.EventDescription, now time.Time, uid string) string {
	ev = ev.Resolved()

	cal := &ical.Calendar{
		Components: []ical.Component{},
		CalendarProperties: []ical.CalendarProperty{
			calendarProperty(ical.PropertyVersion, "2.0"),
			calendarProperty(ical.PropertyCalscale, "GREGORIAN"),
			calendarProperty(ical.PropertyMethod, string(ical.MethodPublish)),
			calendarProperty(ical.PropertyProductId, ProductID),
		},
	}

	var dateParams []ical.PropertyParameter
	if ev.IsAllDay {
		dateParams = append(dateParams, ical.WithValue("DATE"))
	}

	event := cal.AddEvent(uid)
	event.SetProperty(ical.ComponentPropertyDtstamp, now.UTC().Format(stampLayout))
	event.SetProperty(ical.ComponentPropertyDtStart, datetime.Basic(ev.StartDate, ev.StartTime, ev.IsAllDay), dateParams...)
	event.SetProperty(ical.ComponentPropertyDtEnd, datetime.Basic(ev.EndDate, ev.EndTime, ev.IsAllDay), dateParams...)
	if rule, ok := recurrence.Normalize(ev.Recurrence); ok {
		event.SetProperty(ical.ComponentPropertyRrule, rule)
	}
	event.SetSummary(ev.Title)
	event.SetDescription(ev.Description)
	event.SetLocation(ev.Location)
	event.SetProperty(ical.ComponentPropertyStatus, "CONFIRMED")
	event.SetProperty(ical.ComponentPropertySequence, "0")

	return cal.Serialize(ical.WithNewLineWindows)
}

// DataURI wraps an ICS body as a percent-encoded data URI.
func DataURI(body string) string {
	return dataURIPrefix + EscapeComponent(body)
}

// DecodeDataURI reverses DataURI. ok is false for anything else.
func DecodeDataURI(uri string) (string, bool) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", false
	}
	body, err := url.PathUnescape(strings.TrimPrefix(uri, dataURIPrefix))
	if err != nil {
		return "", false
	}
	return body, true
}

// EscapeComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20, never "+".
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func calendarProperty(token ical.Property, value string) ical.CalendarProperty {
	return ical.CalendarProperty{
		BaseProperty: ical.BaseProperty{IANAToken: string(token), Value: value},
	}
}

package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punktual/internal/model"
)

var frozen = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func launchEvent() model.EventDescription {
	return model.EventDescription{
		Title:     "Launch",
		StartDate: "2025-12-25",
		StartTime: "14:30",
		EndDate:   "2025-12-25",
		EndTime:   "16:00",
		Location:  "SF",
	}
}

func lines(body string) []string {
	var out []string
	for _, l := range strings.Split(body, "\r\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func TestDocument_LineOrder(t *testing.T) {
	body := Document(launchEvent(), frozen, "abc@"+UIDDomain)

	assert.Contains(t, body, "\r\n")
	want := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"PRODID:" + ProductID,
		"BEGIN:VEVENT",
		"UID:abc@" + UIDDomain,
		"DTSTAMP:20250601T120000Z",
		"DTSTART:20251225T143000",
		"DTEND:20251225T160000",
		"SUMMARY:Launch",
		"DESCRIPTION:",
		"LOCATION:SF",
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	assert.Equal(t, want, lines(body))
}

func TestDocument_AllDay(t *testing.T) {
	ev := model.EventDescription{Title: "Holiday", StartDate: "2025-07-04", IsAllDay: true}
	body := Document(ev, frozen, "x")

	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250704\r\n")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20250704\r\n")
}

func TestDocument_CRLFOnly(t *testing.T) {
	ev := launchEvent()
	ev.Description = strings.Repeat("A long agenda line that has to be folded. ", 6)
	body := Document(ev, frozen, "x")

	require.Greater(t, strings.Count(body, "\r\n "), 0, "description should fold")
	assert.Equal(t, strings.Count(body, "\n"), strings.Count(body, "\r\n"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
}

func TestDocument_DefaultsForMissingEnd(t *testing.T) {
	ev := model.EventDescription{Title: "Call", StartDate: "2025-03-01"}
	body := Document(ev, frozen, "x")

	assert.Contains(t, body, "DTSTART:20250301T100000")
	assert.Contains(t, body, "DTEND:20250301T110000")
}

func TestDocument_Recurrence(t *testing.T) {
	ev := launchEvent()
	ev.Recurrence = "RRULE:FREQ=WEEKLY;COUNT=3"
	body := Document(ev, frozen, "x")
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY")

	ev.Recurrence = "nonsense"
	assert.NotContains(t, Document(ev, frozen, "x"), "RRULE")
}

func TestDocument_Deterministic(t *testing.T) {
	assert.Equal(t, Document(launchEvent(), frozen, "u"), Document(launchEvent(), frozen, "u"))
}

func TestDocument_ParsesBack(t *testing.T) {
	body := Document(launchEvent(), frozen, "roundtrip@"+UIDDomain)

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	ve := cal.Events()[0]
	assert.Equal(t, "roundtrip@"+UIDDomain, ve.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "Launch", ve.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "SF", ve.GetProperty(ical.ComponentPropertyLocation).Value)
}

func TestDataURI(t *testing.T) {
	body := Document(launchEvent(), frozen, "x")
	uri := DataURI(body)

	assert.True(t, strings.HasPrefix(uri, "data:text/calendar;charset=utf8,"))
	assert.NotContains(t, uri, " ")
	assert.NotContains(t, uri, "+")
	assert.Contains(t, uri, "%0D%0A")

	decoded, ok := DecodeDataURI(uri)
	require.True(t, ok)
	assert.Equal(t, body, decoded)
	assert.Contains(t, decoded, "DTSTART:20251225T143000")
	assert.Contains(t, decoded, "SUMMARY:Launch")

	_, ok = DecodeDataURI("https://example.com")
	assert.False(t, ok)
}

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "a%20b%26c%3Dd%2Be", EscapeComponent("a b&c=d+e"))
}

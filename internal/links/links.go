// Package links builds "add to calendar" deep links for every platform.
package links

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"punktual/internal/datetime"
	"punktual/internal/ics"
	"punktual/internal/model"
	"punktual/internal/recurrence"
)

const (
	googleBase    = "https://calendar.google.com/calendar/render"
	outlookBase   = "https://outlook.live.com/calendar/0/deeplink/compose"
	office365Base = "https://outlook.office.com/calendar/0/deeplink/compose"
	yahooBase     = "https://calendar.yahoo.com/"
)

// Builder produces LinkMaps. Now and NewUID feed the ICS UID and DTSTAMP;
// freeze them for byte-identical output.
type Builder struct {
	Now    func() time.Time
	NewUID func() string
}

// NewBuilder returns a Builder using the wall clock and random UIDs.
func NewBuilder() *Builder {
	return &Builder{
		Now:    time.Now,
		NewUID: func() string { return uuid.NewString() + "@" + ics.UIDDomain },
	}
}

// Build returns a URL for every known platform, or a map of empty strings
// when the title or start date is missing.
func (b *Builder) Build(ev model.EventDescription) model.LinkMap {
	out := model.NewLinkMap()
	if !ev.Complete() {
		return out
	}
	ev = ev.Resolved()

	outlook := outlookLink(outlookBase, ev)
	out[model.Google] = Google(ev)
	out[model.Apple] = ics.DataURI(ics.Document(ev, b.now(), b.uid()))
	out[model.Outlook] = outlook
	out[model.Office365] = outlookLink(office365Base, ev)
	// outlookcom targets the same consumer product as outlook.
	out[model.OutlookCom] = outlook
	out[model.Yahoo] = Yahoo(ev)
	return out
}

// Build uses a default Builder.
func Build(ev model.EventDescription) model.LinkMap {
	return NewBuilder().Build(ev)
}

// Google builds the calendar.google.com TEMPLATE link.
func Google(ev model.EventDescription) string {
	ev = ev.Resolved()
	dates := datetime.Basic(ev.StartDate, ev.StartTime, ev.IsAllDay) + "/" +
		datetime.Basic(ev.EndDate, ev.EndTime, ev.IsAllDay)

	q := query{}
	q.add("action", "TEMPLATE")
	q.add("text", ev.Title)
	q.addRaw("dates", dates)
	q.add("details", ev.Description)
	q.add("location", ev.Location)
	if rule, ok := recurrence.Normalize(ev.Recurrence); ok {
		q.add("recur", "RRULE:"+rule)
	}
	return googleBase + "?" + q.String()
}

// Outlook builds the outlook.live.com compose link.
func Outlook(ev model.EventDescription) string {
	return outlookLink(outlookBase, ev.Resolved())
}

// Office365 builds the outlook.office.com compose link.
func Office365(ev model.EventDescription) string {
	return outlookLink(office365Base, ev.Resolved())
}

func outlookLink(base string, ev model.EventDescription) string {
	q := query{}
	q.add("subject", ev.Title)
	q.addRaw("startdt", datetime.Outlook(ev.StartDate, ev.StartTime, ev.IsAllDay))
	q.addRaw("enddt", datetime.Outlook(ev.EndDate, ev.EndTime, ev.IsAllDay))
	q.add("body", ev.Description)
	q.add("location", ev.Location)
	if ev.IsAllDay {
		q.addRaw("allday", "true")
	}
	q.addRaw("path", "/calendar/action/compose")
	q.addRaw("rru", "addevent")
	return base + "?" + q.String()
}

// Yahoo builds the calendar.yahoo.com v=60 link.
func Yahoo(ev model.EventDescription) string {
	ev = ev.Resolved()
	q := query{}
	q.addRaw("v", "60")
	q.add("title", ev.Title)
	q.addRaw("st", datetime.Yahoo(ev.StartDate, ev.StartTime, ev.IsAllDay))
	q.addRaw("et", datetime.Yahoo(ev.EndDate, ev.EndTime, ev.IsAllDay))
	q.add("desc", ev.Description)
	q.add("in_loc", ev.Location)
	if ev.IsAllDay {
		q.addRaw("dur", "allday")
	}
	return yahooBase + "?" + q.String()
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) uid() string {
	if b.NewUID == nil {
		return uuid.NewString() + "@" + ics.UIDDomain
	}
	return b.NewUID()
}

// query keeps parameters in insertion order and encodes spaces as %20.
type query struct {
	parts []string
}

func (q *query) add(key, value string) {
	q.parts = append(q.parts, key+"="+ics.EscapeComponent(value))
}

func (q *query) addRaw(key, value string) {
	q.parts = append(q.parts, key+"="+value)
}

func (q *query) String() string {
	return strings.Join(q.parts, "&")
}

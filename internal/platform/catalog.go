// Package platform is the read-only catalog of supported calendar services.
package platform

import (
	"sort"
	"strings"
	"unicode"

	"punktual/internal/model"
)

// GenericIcon is shown for platforms the catalog does not know.
const GenericIcon = "📆"

// Entry describes one calendar service.
type Entry struct {
	ID   model.PlatformID `json:"id"`
	Name string           `json:"name"`
	Icon string           `json:"icon"`
}

var catalog = map[model.PlatformID]Entry{
	model.Google:     {ID: model.Google, Name: "Google Calendar", Icon: "📅"},
	model.Apple:      {ID: model.Apple, Name: "Apple Calendar", Icon: "🍎"},
	model.Outlook:    {ID: model.Outlook, Name: "Outlook", Icon: "📧"},
	model.Office365:  {ID: model.Office365, Name: "Office 365", Icon: "💼"},
	model.OutlookCom: {ID: model.OutlookCom, Name: "Outlook.com", Icon: "📨"},
	model.Yahoo:      {ID: model.Yahoo, Name: "Yahoo Calendar", Icon: "🟣"},
}

// Lookup returns the catalog entry for id. Unknown ids get a title-cased
// name and the generic icon.
func Lookup(id model.PlatformID) Entry {
	if e, ok := catalog[id]; ok {
		return e
	}
	return Entry{ID: id, Name: titleCase(string(id)), Icon: GenericIcon}
}

// Known reports whether the catalog has an entry for id.
func Known(id model.PlatformID) bool {
	_, ok := catalog[id]
	return ok
}

// All returns the catalog in display order.
func All() []Entry {
	out := make([]Entry, 0, len(model.PlatformIDs))
	for _, id := range model.PlatformIDs {
		out = append(out, catalog[id])
	}
	return out
}

// DefaultLabel is the per-platform link text, e.g. "Add to Google Calendar".
func DefaultLabel(id model.PlatformID) string {
	return "Add to " + Lookup(id).Name
}

// Selected assembles the platforms switched on in style that have a URL in
// links. Known platforms come first in display order, then unknown ones
// sorted by id.
func Selected(links model.LinkMap, selected map[model.PlatformID]bool) []model.PlatformInfo {
	var extra []model.PlatformID
	for id, on := range selected {
		if on && !Known(id) {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	ids := make([]model.PlatformID, 0, len(model.PlatformIDs)+len(extra))
	for _, id := range model.PlatformIDs {
		if selected[id] {
			ids = append(ids, id)
		}
	}
	ids = append(ids, extra...)

	out := make([]model.PlatformInfo, 0, len(ids))
	for _, id := range ids {
		u := links[id]
		if u == "" {
			continue
		}
		e := Lookup(id)
		out = append(out, model.PlatformInfo{ID: id, Name: e.Name, Icon: e.Icon, URL: u})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}

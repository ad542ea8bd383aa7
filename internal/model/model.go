package model

// PlatformID identifies a calendar service. The values are stable: tracked
// redirect URLs and stored button configurations refer to them.
type PlatformID string

const (
	Google     PlatformID = "google"
	Apple      PlatformID = "apple"
	Outlook    PlatformID = "outlook"
	Office365  PlatformID = "office365"
	OutlookCom PlatformID = "outlookcom"
	Yahoo      PlatformID = "yahoo"
)

// PlatformIDs lists every known platform in display order.
var PlatformIDs = []PlatformID{Google, Apple, Outlook, Office365, OutlookCom, Yahoo}

// EventDescription is the event as authored in the form. Dates are
// YYYY-MM-DD, times are 24-hour HH:MM. Timezone is an opaque label.
type EventDescription struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location" yaml:"location"`

	StartDate string `json:"startDate" yaml:"start_date"`
	StartTime string `json:"startTime" yaml:"start_time"`
	EndDate   string `json:"endDate" yaml:"end_date"`
	EndTime   string `json:"endTime" yaml:"end_time"`

	Timezone string `json:"timezone" yaml:"timezone"`
	IsAllDay bool   `json:"isAllDay" yaml:"is_all_day"`

	// Recurrence is an optional RRULE body, e.g. "FREQ=WEEKLY;COUNT=4".
	Recurrence string `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
}

// Default wall-clock times used when the form has not supplied them yet.
const (
	DefaultStartTime = "10:00"
	DefaultEndTime   = "11:00"
	DefaultTimezone  = "UTC"
)

// Complete reports whether the event carries the minimum needed to build links.
func (e EventDescription) Complete() bool {
	return e.Title != "" && e.StartDate != ""
}

// Resolved returns a copy with end date, times and timezone defaulted.
func (e EventDescription) Resolved() EventDescription {
	if e.StartTime == "" {
		e.StartTime = DefaultStartTime
	}
	if e.EndDate == "" {
		e.EndDate = e.StartDate
	}
	if e.EndTime == "" {
		e.EndTime = DefaultEndTime
	}
	if e.Timezone == "" {
		e.Timezone = DefaultTimezone
	}
	return e
}

// Button layouts, sizes and styles.
const (
	LayoutDropdown   = "dropdown"
	LayoutIndividual = "individual"

	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"

	StyleStandard = "standard"
	StyleMinimal  = "minimal"
	StylePill     = "pill"
)

// DefaultButtonText is the label used when CustomText is empty.
const DefaultButtonText = "Add to Calendar"

// ButtonStyle describes how generated buttons look.
type ButtonStyle struct {
	ButtonLayout string `json:"buttonLayout" yaml:"button_layout"`
	ButtonSize   string `json:"buttonSize" yaml:"button_size"`
	ButtonStyle  string `json:"buttonStyle" yaml:"button_style"`

	// ColorTheme is either a #RRGGBB value or a named theme.
	ColorTheme string `json:"colorTheme" yaml:"color_theme"`
	// TextColor overrides the contrast-derived text color when set.
	TextColor  string `json:"textColor,omitempty" yaml:"text_color,omitempty"`
	CustomText string `json:"customText,omitempty" yaml:"custom_text,omitempty"`

	SelectedPlatforms map[PlatformID]bool `json:"selectedPlatforms" yaml:"selected_platforms"`

	ShowIcons       bool `json:"showIcons" yaml:"show_icons"`
	OpenInNewTab    bool `json:"openInNewTab" yaml:"open_in_new_tab"`
	ShowAttribution bool `json:"showAttribution" yaml:"show_attribution"`
}

// Label returns the main button text.
func (s ButtonStyle) Label() string {
	if s.CustomText != "" {
		return s.CustomText
	}
	return DefaultButtonText
}

// AnySelected reports whether at least one platform is switched on.
func (s ButtonStyle) AnySelected() bool {
	for _, on := range s.SelectedPlatforms {
		if on {
			return true
		}
	}
	return false
}

// Output formats.
const (
	FormatHTML   = "html"
	FormatReact  = "react"
	FormatCSS    = "css"
	FormatJS     = "js"
	FormatDirect = "direct"
)

// CodeOptions controls which artifact is generated and how.
type CodeOptions struct {
	Format     string `json:"format" yaml:"format"`
	Minified   bool   `json:"minified" yaml:"minified"`
	IncludeCSS bool   `json:"includeCss" yaml:"include_css"`
	IncludeJS  bool   `json:"includeJs" yaml:"include_js"`
	// ShareID, when set, routes every button through the tracked redirect.
	ShareID string `json:"shareId,omitempty" yaml:"share_id,omitempty"`
}

// LinkMap maps each platform to its ready-to-use URL. Maps built with
// NewLinkMap always hold every known platform key.
type LinkMap map[PlatformID]string

// NewLinkMap returns a map with every known platform set to "".
func NewLinkMap() LinkMap {
	m := make(LinkMap, len(PlatformIDs))
	for _, id := range PlatformIDs {
		m[id] = ""
	}
	return m
}

// Empty reports whether no platform has a URL.
func (m LinkMap) Empty() bool {
	for _, u := range m {
		if u != "" {
			return false
		}
	}
	return true
}

// PlatformInfo is a selected platform ready to be rendered.
type PlatformInfo struct {
	ID   PlatformID `json:"id"`
	Name string     `json:"name"`
	Icon string     `json:"icon"`
	URL  string     `json:"url"`
}

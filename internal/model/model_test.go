package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDescription_Complete(t *testing.T) {
	assert.True(t, EventDescription{Title: "x", StartDate: "2025-01-01"}.Complete())
	assert.False(t, EventDescription{Title: "x"}.Complete())
	assert.False(t, EventDescription{StartDate: "2025-01-01"}.Complete())
}

func TestEventDescription_Resolved(t *testing.T) {
	ev := EventDescription{Title: "x", StartDate: "2025-01-01"}
	got := ev.Resolved()

	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "2025-01-01", got.EndDate)
	assert.Equal(t, "11:00", got.EndTime)
	assert.Equal(t, "UTC", got.Timezone)
	// The receiver is a value; the original stays untouched.
	assert.Equal(t, "", ev.StartTime)

	kept := EventDescription{StartDate: "2025-01-01", StartTime: "08:15", EndDate: "2025-01-02", EndTime: "09:00", Timezone: "Asia/Seoul"}.Resolved()
	assert.Equal(t, "08:15", kept.StartTime)
	assert.Equal(t, "2025-01-02", kept.EndDate)
	assert.Equal(t, "09:00", kept.EndTime)
	assert.Equal(t, "Asia/Seoul", kept.Timezone)
}

func TestButtonStyle(t *testing.T) {
	assert.Equal(t, DefaultButtonText, ButtonStyle{}.Label())
	assert.Equal(t, "Save", ButtonStyle{CustomText: "Save"}.Label())

	assert.False(t, ButtonStyle{}.AnySelected())
	assert.False(t, ButtonStyle{SelectedPlatforms: map[PlatformID]bool{Google: false}}.AnySelected())
	assert.True(t, ButtonStyle{SelectedPlatforms: map[PlatformID]bool{Google: false, Yahoo: true}}.AnySelected())
}

func TestLinkMap(t *testing.T) {
	m := NewLinkMap()
	assert.Len(t, m, len(PlatformIDs))
	assert.True(t, m.Empty())

	m[Apple] = "data:text/calendar;charset=utf8,x"
	assert.False(t, m.Empty())
}

package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasic(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		clock  string
		allDay bool
		want   string
	}{
		{"timed", "2025-12-25", "14:30", false, "20251225T143000"},
		{"all day has no time part", "2025-07-04", "14:30", true, "20250704"},
		{"missing time defaults to ten", "2025-01-01", "", false, "20250101T100000"},
		{"seconds are dropped", "2025-01-01", "08:15:59", false, "20250101T081500"},
		{"single digit hour", "2025-01-01", "9:05", false, "20250101T090500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Basic(tt.date, tt.clock, tt.allDay))
		})
	}
}

func TestOutlook(t *testing.T) {
	assert.Equal(t, "2025-12-25T14:30:00.000Z", Outlook("2025-12-25", "14:30", false))
	assert.Equal(t, "2025-07-04T00:00:00.000Z", Outlook("2025-07-04", "14:30", true))
	assert.Equal(t, "2025-07-04T10:00:00.000Z", Outlook("2025-07-04", "", false))
}

func TestYahoo(t *testing.T) {
	assert.Equal(t, "20251225T143000", Yahoo("2025-12-25", "14:30", false))
	assert.Equal(t, "20250704", Yahoo("2025-07-04", "14:30", true))
	assert.Equal(t, "20250704T100000", Yahoo("2025-07-04", "", false))
	assert.Equal(t, "20250704T070000", Yahoo("2025-07-04", "7", false))
}

func TestClock(t *testing.T) {
	for in, want := range map[string]string{
		"9:5":      "09:05",
		"09:05:30": "09:05",
		"":         "10:00",
		" 7 ":      "07:00",
		"14:30":    "14:30",
	} {
		assert.Equal(t, want, Clock(in), in)
	}
}

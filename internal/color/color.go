// Package color picks readable text colors for generated buttons.
package color

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Dark is used on light backgrounds.
	Dark = "#374151"
	// Light is used on dark backgrounds.
	Light = "#FFFFFF"

	// DefaultTheme applies when no theme is configured.
	DefaultTheme = "#4D90FF"

	// luminanceThreshold is tuned for the button palette; it is not the 0.5
	// midpoint and changing it flips which themes get dark text.
	luminanceThreshold = 0.179
)

// themes maps named color themes to their background color.
var themes = map[string]string{
	"blue":   "#4D90FF",
	"indigo": "#6366F1",
	"purple": "#8B5CF6",
	"pink":   "#EC4899",
	"red":    "#EF4444",
	"orange": "#F97316",
	"yellow": "#FACC15",
	"green":  "#10B981",
	"teal":   "#14B8A6",
	"gray":   "#6B7280",
	"black":  "#111827",
	"white":  "#FFFFFF",
}

// Contrast returns Dark or Light for the #RRGGBB background. Malformed input
// is not validated; unreadable channels count as zero.
func Contrast(hex string) string {
	if Luminance(hex) > luminanceThreshold {
		return Dark
	}
	return Light
}

// Luminance returns the WCAG relative luminance of a #RRGGBB color.
func Luminance(hex string) float64 {
	r, g, b := channels(hex)
	return 0.2126*linear(r) + 0.7152*linear(g) + 0.0722*linear(b)
}

// Theme resolves a theme name or hex value to a #RRGGBB background.
func Theme(theme string) string {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return DefaultTheme
	}
	if strings.HasPrefix(theme, "#") {
		return strings.ToUpper(theme)
	}
	if hex, ok := themes[strings.ToLower(theme)]; ok {
		return hex
	}
	return DefaultTheme
}

// Text returns the override when set, else the contrast color for bg.
func Text(bg, override string) string {
	if override != "" {
		return override
	}
	return Contrast(bg)
}

func channels(hex string) (float64, float64, float64) {
	hex = strings.TrimPrefix(hex, "#")
	return channel(hex, 0), channel(hex, 2), channel(hex, 4)
}

func channel(hex string, off int) float64 {
	if len(hex) < off+2 {
		return 0
	}
	v, err := strconv.ParseUint(hex[off:off+2], 16, 8)
	if err != nil {
		return 0
	}
	return float64(v) / 255
}

func linear(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

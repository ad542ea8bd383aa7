package codegen

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"punktual/internal/model"
)

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestMinify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		css  bool
		want string
	}{
		{"collapse", "a   b\n\tc", false, "a b c"},
		{"between tags", "<ul>\n  <li>x</li>\n</ul>\n", false, "<ul><li>x</li></ul>"},
		{"css punctuation", ".a {\n  color: red;\n}\n", true, ".a{color: red;}"},
		{"css off keeps braces", ".a { color: red; }", false, ".a { color: red; }"},
		{"empty", "  \n ", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Minify(tt.in, tt.css))
		})
	}
}

func TestMinify_IdempotentOnEveryFormat(t *testing.T) {
	g := frozen()
	var outputs []string
	for _, layout := range []string{model.LayoutDropdown, model.LayoutIndividual} {
		st := style(layout)
		st.ShowAttribution = true
		for _, format := range []string{model.FormatHTML, model.FormatReact, model.FormatCSS, model.FormatJS, model.FormatDirect} {
			outputs = append(outputs, g.Generate(launch(), st, model.CodeOptions{Format: format, IncludeCSS: true, IncludeJS: true}))
		}
	}

	for _, x := range outputs {
		for _, css := range []bool{false, true} {
			once := Minify(x, css)
			assert.Equal(t, once, Minify(once, css))
			assert.LessOrEqual(t, len(stripWhitespace(once)), len(x))
			assert.LessOrEqual(t, len(once), len(x))
		}
	}
}

func TestMinify_JSStaysIntact(t *testing.T) {
	min := Minify(JS(), true)
	assert.NotContains(t, min, "//")
	assert.Contains(t, min, "window.punktualToggle = function (button){")
	assert.True(t, strings.HasSuffix(min, "})();"))
}

func TestCSS_Styles(t *testing.T) {
	standard := CSS(model.ButtonStyle{ButtonStyle: model.StyleStandard, ButtonSize: model.SizeSmall, ColorTheme: "#000000"})
	assert.Contains(t, standard, "background-color: #000000;")
	assert.Contains(t, standard, "color: #FFFFFF;")
	assert.Contains(t, standard, "padding: 8px 16px;")
	assert.Contains(t, standard, "font-size: 14px;")
	assert.Contains(t, standard, "border-radius: 6px;")
	assert.Contains(t, standard, "opacity: 0.9;")

	pill := CSS(model.ButtonStyle{ButtonStyle: model.StylePill, ButtonSize: model.SizeLarge, ColorTheme: "#FFFFFF"})
	assert.Contains(t, pill, "border-radius: 9999px;")
	assert.Contains(t, pill, "padding: 16px 32px;")
	assert.Contains(t, pill, "color: #374151;")

	minimal := CSS(model.ButtonStyle{ButtonStyle: model.StyleMinimal, ColorTheme: "#10B981"})
	assert.Contains(t, minimal, "background-color: transparent;")
	assert.Contains(t, minimal, "border: 2px solid #10B981;")
	assert.Contains(t, minimal, "color: #10B981;")
	// Minimal fills in on hover.
	assert.Contains(t, minimal, "background-color: #10B981;\n  color: #374151;")
	assert.Contains(t, minimal, "padding: 12px 24px;")
}

func TestCSS_TextOverride(t *testing.T) {
	out := CSS(model.ButtonStyle{ColorTheme: "#000000", TextColor: "#FF0000"})
	assert.Contains(t, out, "color: #FF0000;")
}

func TestReact(t *testing.T) {
	g := frozen()
	out := g.Generate(launch(), style(model.LayoutDropdown), model.CodeOptions{Format: model.FormatReact})

	assert.True(t, strings.HasPrefix(out, "import React, { useEffect, useRef, useState } from 'react';"))
	assert.Contains(t, out, "export default function AddToCalendarButton()")
	assert.Contains(t, out, `"id": "google"`)
	assert.Contains(t, out, `"name": "Google Calendar"`)
	assert.Contains(t, out, `"backgroundColor": "#4D90FF"`)
	assert.Contains(t, out, `const label = "Add to Calendar";`)
	assert.Contains(t, out, "const showIcons = true;")
	assert.Contains(t, out, "&text=Launch&")
	assert.NotContains(t, out, `\u0026`)

	individual := g.Generate(launch(), style(model.LayoutIndividual), model.CodeOptions{Format: model.FormatReact})
	assert.Contains(t, individual, "export default function AddToCalendarButtons()")
	assert.NotContains(t, individual, "useState(")
}

func TestReact_TrackedURLs(t *testing.T) {
	out := frozen().Generate(launch(), style(model.LayoutDropdown), model.CodeOptions{Format: model.FormatReact, ShareID: "s1"})
	assert.Contains(t, out, `"url": "https://example.test/e/s1?cal=yahoo"`)
	assert.NotContains(t, out, "calendar.google.com")
}

func TestDropdownHTML_Icons(t *testing.T) {
	platforms := []model.PlatformInfo{{ID: model.Google, Name: "Google Calendar", Icon: "📅", URL: "https://g.test/?a=1&b=2"}}

	on := DropdownHTML(platforms, model.ButtonStyle{ShowIcons: true})
	assert.Contains(t, on, `class="punktual-atc-icon"`)
	assert.Contains(t, on, `href="https://g.test/?a=1&amp;b=2"`)

	off := DropdownHTML(platforms, model.ButtonStyle{})
	assert.NotContains(t, off, "punktual-atc-icon")
	assert.NotContains(t, off, "punktual-atc-item-icon")
}

package codegen

import (
	"html"
	"strings"

	"punktual/internal/color"
	"punktual/internal/model"
)

// ButtonIcon prefixes the main button label when icons are on.
const ButtonIcon = "📅"

const (
	fontStack      = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif`
	emailFontStack = "Arial, Helvetica, sans-serif"
)

type sizeSpec struct {
	Padding  string
	FontSize string
}

var sizes = map[string]sizeSpec{
	model.SizeSmall:  {Padding: "8px 16px", FontSize: "14px"},
	model.SizeMedium: {Padding: "12px 24px", FontSize: "16px"},
	model.SizeLarge:  {Padding: "16px 32px", FontSize: "18px"},
}

// buttonTheme is the resolved look shared by every format.
type buttonTheme struct {
	Background string
	Text       string
	Border     string
	Radius     string
	Padding    string
	FontSize   string
	// HoverBackground and HoverText are set only for the minimal style,
	// which fills in on hover.
	HoverBackground string
	HoverText       string
}

func resolveTheme(style model.ButtonStyle) buttonTheme {
	base := color.Theme(style.ColorTheme)
	size, ok := sizes[style.ButtonSize]
	if !ok {
		size = sizes[model.SizeMedium]
	}

	t := buttonTheme{
		Border:   base,
		Radius:   "6px",
		Padding:  size.Padding,
		FontSize: size.FontSize,
	}

	switch style.ButtonStyle {
	case model.StyleMinimal:
		t.Background = "transparent"
		t.Text = base
		if style.TextColor != "" {
			t.Text = style.TextColor
		}
		t.HoverBackground = base
		t.HoverText = color.Contrast(base)
	case model.StylePill:
		t.Background = base
		t.Text = color.Text(base, style.TextColor)
		t.Radius = "9999px"
	default:
		t.Background = base
		t.Text = color.Text(base, style.TextColor)
	}
	return t
}

// fill substitutes {{name}} tokens given as name, value pairs.
func fill(tpl string, kv ...string) string {
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{{"+kv[i]+"}}", kv[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// anchorAttrs returns the target/rel/download attributes for a platform link.
func anchorAttrs(p model.PlatformInfo, style model.ButtonStyle) string {
	switch {
	case strings.HasPrefix(p.URL, "data:"):
		return ` download="event.ics"`
	case style.OpenInNewTab:
		return ` target="_blank" rel="noopener noreferrer"`
	}
	return ""
}

func esc(s string) string {
	return html.EscapeString(s)
}

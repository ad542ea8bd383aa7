package codegen

import (
	"fmt"
	"strings"

	"punktual/internal/model"
	"punktual/internal/platform"
)

// DropdownHTML renders the single button with its toggled platform panel.
// It relies on the classes styled by CSS and the punktualToggle function
// defined by JS.
func DropdownHTML(platforms []model.PlatformInfo, style model.ButtonStyle) string {
	var b strings.Builder
	b.WriteString(`<div class="punktual-atc">` + "\n")
	b.WriteString(`  <button type="button" class="punktual-atc-button" onclick="punktualToggle(this)" aria-haspopup="true" aria-expanded="false">` + "\n")
	if style.ShowIcons {
		fmt.Fprintf(&b, "    <span class=\"punktual-atc-icon\" aria-hidden=\"true\">%s</span>\n", ButtonIcon)
	}
	fmt.Fprintf(&b, "    <span>%s</span>\n", esc(style.Label()))
	b.WriteString("  </button>\n")
	b.WriteString(`  <div class="punktual-atc-dropdown" role="menu">` + "\n")
	for _, p := range platforms {
		fmt.Fprintf(&b, `    <a href="%s" class="punktual-atc-item" role="menuitem"%s>`, esc(p.URL), anchorAttrs(p, style))
		if style.ShowIcons {
			fmt.Fprintf(&b, `<span class="punktual-atc-item-icon" aria-hidden="true">%s</span>`, p.Icon)
		}
		fmt.Fprintf(&b, "<span>%s</span></a>\n", esc(p.Name))
	}
	b.WriteString("  </div>\n")
	b.WriteString("</div>\n")
	return b.String()
}

const individualCell = `    <td style="padding: 4px;">
      <a href="{{href}}"{{attrs}} style="text-decoration: none; display: inline-block;">
        <table role="presentation" cellpadding="0" cellspacing="0" border="0" style="border-collapse: separate;">
          <tr>
            <td style="background-color: {{bg}}; color: {{fg}}; border: 2px solid {{border}}; border-radius: {{radius}}; padding: {{padding}}; font-family: {{font}}; font-size: {{size}}; font-weight: 600; line-height: 1.2; white-space: nowrap;">{{label}}</td>
          </tr>
        </table>
      </a>
    </td>
`

const attributionRow = `  <tr>
    <td colspan="{{span}}" style="padding: 8px 4px 0; font-family: {{font}}; font-size: 11px; color: #9CA3AF;">Powered by <a href="{{base}}" target="_blank" rel="noopener noreferrer" style="color: #9CA3AF; text-decoration: underline;">Punktual</a></td>
  </tr>
`

// IndividualHTML renders one button per platform in nested tables with
// inline styles only, so it survives email clients that strip CSS.
func IndividualHTML(platforms []model.PlatformInfo, style model.ButtonStyle, baseURL string) string {
	t := resolveTheme(style)

	var b strings.Builder
	b.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" style="border-collapse: collapse;">` + "\n")
	b.WriteString("  <tr>\n")
	for _, p := range platforms {
		label := esc(p.Name)
		if style.ShowIcons {
			label = p.Icon + " " + label
		}
		b.WriteString(fill(individualCell,
			"href", esc(p.URL),
			"attrs", anchorAttrs(p, style),
			"bg", t.Background,
			"fg", t.Text,
			"border", t.Border,
			"radius", t.Radius,
			"padding", t.Padding,
			"font", emailFontStack,
			"size", t.FontSize,
			"label", label,
		))
	}
	b.WriteString("  </tr>\n")
	if style.ShowAttribution {
		b.WriteString(fill(attributionRow,
			"span", fmt.Sprint(len(platforms)),
			"font", emailFontStack,
			"base", esc(baseURL),
		))
	}
	b.WriteString("</table>\n")
	return b.String()
}

// DirectLinks renders a plain list of anchors, one per platform.
func DirectLinks(platforms []model.PlatformInfo, style model.ButtonStyle) string {
	var b strings.Builder
	b.WriteString(`<ul class="punktual-links">` + "\n")
	for _, p := range platforms {
		text := style.CustomText
		if text == "" {
			text = platform.DefaultLabel(p.ID)
		}
		fmt.Fprintf(&b, "  <li><a href=\"%s\"%s>%s</a></li>\n", esc(p.URL), anchorAttrs(p, style), esc(text))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

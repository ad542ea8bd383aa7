package codegen

import (
	"punktual/internal/model"
)

const stylesheet = `.punktual-atc {
  position: relative;
  display: inline-block;
  font-family: {{font}};
}
.punktual-atc-button {
  display: inline-flex;
  align-items: center;
  gap: 8px;
  background-color: {{bg}};
  color: {{fg}};
  border: 2px solid {{border}};
  border-radius: {{radius}};
  padding: {{padding}};
  font-family: inherit;
  font-size: {{size}};
  font-weight: 600;
  line-height: 1.2;
  cursor: pointer;
  transition: background-color 0.15s ease, color 0.15s ease, opacity 0.15s ease;
}
.punktual-atc-button:hover {
{{hover}}}
.punktual-atc-button:focus-visible {
  outline: 2px solid {{border}};
  outline-offset: 2px;
}
.punktual-atc-dropdown {
  display: none;
  position: absolute;
  top: calc(100% + 4px);
  left: 0;
  z-index: 1000;
  min-width: 220px;
  padding: 4px 0;
  background: #FFFFFF;
  border: 1px solid #E5E7EB;
  border-radius: 8px;
  box-shadow: 0 10px 25px rgba(0, 0, 0, 0.12);
}
.punktual-atc.punktual-atc-open .punktual-atc-dropdown {
  display: block;
}
.punktual-atc-item {
  display: flex;
  align-items: center;
  gap: 10px;
  padding: 10px 16px;
  color: #374151;
  font-size: 14px;
  text-decoration: none;
}
.punktual-atc-item:hover,
.punktual-atc-item:focus {
  background-color: #F3F4F6;
}
`

// CSS returns the stylesheet for the dropdown widget.
func CSS(style model.ButtonStyle) string {
	t := resolveTheme(style)

	hover := "  opacity: 0.9;\n"
	if t.HoverBackground != "" {
		hover = "  background-color: " + t.HoverBackground + ";\n  color: " + t.HoverText + ";\n"
	}

	return fill(stylesheet,
		"font", fontStack,
		"bg", t.Background,
		"fg", t.Text,
		"border", t.Border,
		"radius", t.Radius,
		"padding", t.Padding,
		"size", t.FontSize,
		"hover", hover,
	)
}

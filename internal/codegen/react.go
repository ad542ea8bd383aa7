package codegen

import (
	"bytes"
	"encoding/json"
	"strconv"

	"punktual/internal/model"
)

const reactHeader = `import React, { useEffect, useRef, useState } from 'react';

const platforms = {{platforms}};

const styles = {{styles}};

const label = {{label}};
const showIcons = {{icons}};
const openInNewTab = {{newTab}};

function linkProps(p) {
  if (p.url.startsWith('data:')) {
    return { download: 'event.ics' };
  }
  if (openInNewTab) {
    return { target: '_blank', rel: 'noopener noreferrer' };
  }
  return {};
}

`

const reactDropdown = `export default function AddToCalendarButton() {
  const [open, setOpen] = useState(false);
  const ref = useRef(null);

  useEffect(() => {
    if (!open) {
      return undefined;
    }
    const onClick = (event) => {
      if (ref.current && !ref.current.contains(event.target)) {
        setOpen(false);
      }
    };
    const onKey = (event) => {
      if (event.key === 'Escape') {
        setOpen(false);
      }
    };
    document.addEventListener('mousedown', onClick);
    document.addEventListener('keydown', onKey);
    return () => {
      document.removeEventListener('mousedown', onClick);
      document.removeEventListener('keydown', onKey);
    };
  }, [open]);

  return (
    <div ref={ref} style={styles.wrapper}>
      <button type="button" style={styles.button} onClick={() => setOpen(!open)} aria-haspopup="true" aria-expanded={open}>
        {showIcons && <span style={styles.icon} aria-hidden="true">{{icon}}</span>}
        {label}
      </button>
      {open && (
        <div role="menu" style={styles.dropdown}>
          {platforms.map((p) => (
            <a key={p.id} href={p.url} role="menuitem" style={styles.item} onClick={() => setOpen(false)} {...linkProps(p)}>
              {showIcons && <span style={styles.icon} aria-hidden="true">{p.icon}</span>}
              {p.name}
            </a>
          ))}
        </div>
      )}
    </div>
  );
}
`

const reactIndividual = `export default function AddToCalendarButtons() {
  return (
    <div style={styles.row}>
      {platforms.map((p) => (
        <a key={p.id} href={p.url} style={styles.button} {...linkProps(p)}>
          {showIcons && <span style={styles.icon} aria-hidden="true">{p.icon}</span>}
          {p.name}
        </a>
      ))}
    </div>
  );
}
`

// React returns a self-contained functional component. The dropdown layout
// keeps its open state in a hook; the individual layout renders a row of
// buttons.
func React(platforms []model.PlatformInfo, style model.ButtonStyle) string {
	t := resolveTheme(style)

	styles := map[string]map[string]string{
		"wrapper": {"position": "relative", "display": "inline-block", "fontFamily": fontStack},
		"button": {
			"display":         "inline-flex",
			"alignItems":      "center",
			"backgroundColor": t.Background,
			"color":           t.Text,
			"border":          "2px solid " + t.Border,
			"borderRadius":    t.Radius,
			"padding":         t.Padding,
			"fontSize":        t.FontSize,
			"fontWeight":      "600",
			"lineHeight":      "1.2",
			"cursor":          "pointer",
			"textDecoration":  "none",
		},
		"dropdown": {
			"position":        "absolute",
			"top":             "calc(100% + 4px)",
			"left":            "0",
			"zIndex":          "1000",
			"minWidth":        "220px",
			"padding":         "4px 0",
			"backgroundColor": "#FFFFFF",
			"border":          "1px solid #E5E7EB",
			"borderRadius":    "8px",
			"boxShadow":       "0 10px 25px rgba(0, 0, 0, 0.12)",
		},
		"item": {
			"display":        "flex",
			"alignItems":     "center",
			"padding":        "10px 16px",
			"color":          "#374151",
			"fontSize":       "14px",
			"textDecoration": "none",
		},
		"icon": {"marginRight": "8px"},
		"row":  {"display": "flex", "flexWrap": "wrap", "gap": "8px"},
	}

	body := reactDropdown
	if style.ButtonLayout == model.LayoutIndividual {
		body = reactIndividual
	}

	return fill(reactHeader+body,
		"platforms", jsonLiteral(platforms),
		"styles", jsonLiteral(styles),
		"label", jsonLiteral(style.Label()),
		"icons", strconv.FormatBool(style.ShowIcons),
		"newTab", strconv.FormatBool(style.OpenInNewTab),
		"icon", ButtonIcon,
	)
}

// jsonLiteral encodes v as an indented JS literal. Map keys come out sorted.
func jsonLiteral(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

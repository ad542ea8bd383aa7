// Package codegen renders embeddable "add to calendar" widgets from a
// LinkMap and a ButtonStyle. Every entry point returns a string; incomplete
// input yields an HTML comment placeholder instead of an error.
package codegen

import (
	"net/url"
	"strings"

	"punktual/internal/links"
	"punktual/internal/model"
	"punktual/internal/platform"
)

// DefaultBaseURL is used for tracked links and attribution when no base URL
// is configured.
const DefaultBaseURL = "https://punktual.co"

// Placeholders returned instead of markup.
const (
	PlaceholderIncomplete  = "<!-- Complete the form to generate code -->"
	PlaceholderNoPlatforms = "<!-- Please select at least one calendar platform -->"
)

// Generator renders every output format.
type Generator struct {
	BaseURL string
	Links   *links.Builder
}

// New returns a Generator. An empty baseURL falls back to DefaultBaseURL and
// a nil builder to links.NewBuilder().
func New(baseURL string, b *links.Builder) *Generator {
	if b == nil {
		b = links.NewBuilder()
	}
	return &Generator{BaseURL: baseURL, Links: b}
}

// Generate builds links for ev and renders the format chosen in opts.
func (g *Generator) Generate(ev model.EventDescription, style model.ButtonStyle, opts model.CodeOptions) string {
	switch opts.Format {
	case model.FormatCSS, model.FormatJS:
		// Stylesheet and behavior do not depend on the event.
		return g.Render(model.NewLinkMap(), style, opts)
	}
	if !ev.Complete() {
		return PlaceholderIncomplete
	}
	return g.Render(g.BuildLinks(ev), style, opts)
}

// BuildLinks returns the raw platform links for ev, for callers that shorten
// them before calling Render.
func (g *Generator) BuildLinks(ev model.EventDescription) model.LinkMap {
	return g.builder().Build(ev)
}

// GenerateDirectLinks renders the plain link list for ev.
func (g *Generator) GenerateDirectLinks(ev model.EventDescription, style model.ButtonStyle, opts model.CodeOptions) string {
	opts.Format = model.FormatDirect
	return g.Generate(ev, style, opts)
}

// Render turns an already built (possibly shortened) LinkMap into the
// requested artifact.
func (g *Generator) Render(lm model.LinkMap, style model.ButtonStyle, opts model.CodeOptions) string {
	switch opts.Format {
	case model.FormatCSS:
		return finish(CSS(style), opts, true)
	case model.FormatJS:
		return finish(JS(), opts, true)
	case model.FormatHTML, "", model.FormatReact, model.FormatDirect:
	default:
		return "<!-- Unsupported format: " + commentSafe(opts.Format) + " -->"
	}

	if lm.Empty() {
		return PlaceholderIncomplete
	}
	if !style.AnySelected() {
		return PlaceholderNoPlatforms
	}
	platforms := g.platforms(lm, style, opts)
	if len(platforms) == 0 {
		return PlaceholderNoPlatforms
	}

	switch opts.Format {
	case model.FormatReact:
		return finish(React(platforms, style), opts, true)
	case model.FormatDirect:
		return finish(DirectLinks(platforms, style), opts, false)
	}

	if style.ButtonLayout == model.LayoutIndividual {
		return finish(IndividualHTML(platforms, style, g.baseURL()), opts, false)
	}

	var b strings.Builder
	if opts.IncludeCSS {
		b.WriteString("<style>\n")
		b.WriteString(CSS(style))
		b.WriteString("</style>\n")
	}
	b.WriteString(DropdownHTML(platforms, style))
	if opts.IncludeJS {
		b.WriteString("<script>\n")
		b.WriteString(JS())
		b.WriteString("</script>\n")
	}
	return finish(b.String(), opts, opts.IncludeCSS || opts.IncludeJS)
}

// TrackedURL is the redirect that records a click before forwarding to the
// platform link.
func TrackedURL(baseURL, shareID string, id model.PlatformID) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/e/" + url.PathEscape(shareID) + "?cal=" + string(id)
}

func (g *Generator) platforms(lm model.LinkMap, style model.ButtonStyle, opts model.CodeOptions) []model.PlatformInfo {
	out := platform.Selected(lm, style.SelectedPlatforms)
	if opts.ShareID == "" {
		return out
	}
	for i := range out {
		out[i].URL = TrackedURL(g.baseURL(), opts.ShareID, out[i].ID)
	}
	return out
}

func (g *Generator) baseURL() string {
	if g.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(g.BaseURL, "/")
}

func (g *Generator) builder() *links.Builder {
	if g.Links == nil {
		return links.NewBuilder()
	}
	return g.Links
}

func finish(out string, opts model.CodeOptions, css bool) string {
	if opts.Minified {
		return Minify(out, css)
	}
	return out
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "--", "")
}

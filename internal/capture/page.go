package capture

import (
	"strconv"
	"strings"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Preview</title>
<style>
html, body { margin: 0; background: #F9FAFB; }
.preview-frame { box-sizing: border-box; width: {{width}}px; padding: 32px; }
</style>
</head>
<body data-ready="false">
<div class="preview-frame">
{{markup}}
</div>
<script>document.body.setAttribute('data-ready', 'true');</script>
</body>
</html>
`

// WrapPage places a snippet in a minimal standalone HTML document of the
// given width. A non-positive width uses DefaultWidth.
func WrapPage(markup string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return strings.NewReplacer(
		"{{width}}", strconv.Itoa(width),
		"{{markup}}", markup,
	).Replace(pageTemplate)
}

package codegen

import (
	"regexp"
	"strings"
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	cssPunct    = regexp.MustCompile(`\s*([{};])\s*`)
	betweenTags = regexp.MustCompile(`>\s+<`)
)

// Minify collapses whitespace runs and drops whitespace between tags. With
// css set it also removes whitespace around braces and semicolons. Applying
// it twice gives the same result as applying it once.
func Minify(s string, css bool) string {
	s = spaceRun.ReplaceAllString(s, " ")
	if css {
		s = cssPunct.ReplaceAllString(s, "$1")
	}
	s = betweenTags.ReplaceAllString(s, "><")
	return strings.TrimSpace(s)
}

package postprocess

import (
	"regexp"
	"strings"
)

var (
	htmlFenceRe = regexp.MustCompile("```html\n?")
	bareFenceRe = regexp.MustCompile("```\n?")
)

// Clean removes markdown code fences from raw model output and trims
// surrounding whitespace. Content without fences passes through unchanged
// apart from trimming.
func Clean(raw string) string {
	out := htmlFenceRe.ReplaceAllString(raw, "")
	out = bareFenceRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

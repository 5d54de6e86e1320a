package credential

import "regexp"

var (
	mapboxAssignRe = regexp.MustCompile(`(?i)mapboxgl\.accessToken\s*=`)
	mapboxScriptRe = regexp.MustCompile(`(?i)<script[^>]*mapbox[^>]*>`)
)

// mapboxStrategy injects the access token even when the document never
// assigns one: after the Mapbox script tag if present, otherwise into the
// document head or body.
type mapboxStrategy struct {
	*genericStrategy
}

func newMapboxStrategy(rule serviceRule) *mapboxStrategy {
	return &mapboxStrategy{genericStrategy: newGenericStrategy(rule)}
}

func (s *mapboxStrategy) Inject(content, key string) string {
	if content == "" || key == "" {
		return content
	}

	out := s.replacePlaceholder(content, key)
	assignment := s.rule.InjectTemplate(key)

	if mapboxAssignRe.MatchString(out) {
		return s.rule.InjectPattern.ReplaceAllLiteralString(out, assignment)
	}

	if loc := mapboxScriptRe.FindStringIndex(out); loc != nil {
		return out[:loc[1]] + "\n<script>" + assignment + "</script>" + out[loc[1]:]
	}

	return injectIntoDocument(out, "<script>"+assignment+"</script>")
}

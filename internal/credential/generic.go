package credential

import (
	"regexp"
	"strings"
)

// genericStrategy covers services whose key lives in an assignment the
// injection pattern can rewrite in place.
type genericStrategy struct {
	rule          serviceRule
	placeholderRe *regexp.Regexp
}

func newGenericStrategy(rule serviceRule) *genericStrategy {
	return &genericStrategy{
		rule:          rule,
		placeholderRe: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(rule.Placeholder)),
	}
}

func (s *genericStrategy) ID() string { return s.rule.ID }

func (s *genericStrategy) Info() Requirement {
	return Requirement{
		ID:          s.rule.ID,
		Name:        s.rule.Name,
		Placeholder: s.rule.Placeholder,
		DocsURL:     s.rule.DocsURL,
	}
}

func (s *genericStrategy) Detect(content string) bool {
	if content == "" {
		return false
	}
	for _, p := range s.rule.Patterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

func (s *genericStrategy) Validate(key string) bool {
	return strings.TrimSpace(key) != "" && key != s.rule.Placeholder
}

func (s *genericStrategy) Inject(content, key string) string {
	if content == "" || key == "" {
		return content
	}

	out := s.placeholderRe.ReplaceAllLiteralString(content, key)
	if s.rule.InjectPattern != nil && s.rule.InjectTemplate != nil {
		out = s.rule.InjectPattern.ReplaceAllLiteralString(out, s.rule.InjectTemplate(key))
	}
	return out
}

// replacePlaceholder swaps every case-insensitive placeholder occurrence.
func (s *genericStrategy) replacePlaceholder(content, key string) string {
	return s.placeholderRe.ReplaceAllLiteralString(content, key)
}

var bodyOpenRe = regexp.MustCompile(`(?i)<body[^>]*>`)

// injectIntoDocument places script markup at the end of <head>, or right
// after the <body> open tag when the document has no head.
func injectIntoDocument(content, script string) string {
	if strings.Contains(content, "</head>") {
		return strings.Replace(content, "</head>", script+"</head>", 1)
	}
	if loc := bodyOpenRe.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + script + content[loc[1]:]
	}
	return content
}

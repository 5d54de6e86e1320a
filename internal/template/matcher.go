package template

import (
	"regexp"
	"strings"
)

// Scoring weights for keyword matching.
const (
	scoreKeyword    = 10
	scoreEarlyBonus = 5 // keyword appears within the first earlyWindow characters
	scoreSynonym    = 5
	scoreContext    = 3

	earlyWindow = 20

	minScoreThreshold = 0
)

// Score computes the match score between a request text and a template.
// Each keyword hit is worth scoreKeyword, with an extra scoreEarlyBonus when
// the keyword appears near the start of the text. Synonyms and context
// keywords contribute smaller amounts.
func Score(text string, tpl *Template) int {
	if text == "" || tpl == nil {
		return 0
	}

	lower := strings.ToLower(text)
	score := 0

	for _, kw := range tpl.Keywords {
		idx := strings.Index(lower, strings.ToLower(kw))
		if idx < 0 {
			continue
		}
		score += scoreKeyword
		if idx < earlyWindow {
			score += scoreEarlyBonus
		}
	}
	for _, syn := range tpl.Synonyms {
		if strings.Contains(lower, strings.ToLower(syn)) {
			score += scoreSynonym
		}
	}
	for _, ctx := range tpl.ContextKeywords {
		if strings.Contains(lower, strings.ToLower(ctx)) {
			score += scoreContext
		}
	}

	return score
}

// FindBestMatch scores every template against the text and returns the
// highest scorer, or nil when nothing matches. Ties keep the earliest
// template in catalog order. A template whose keyword appears literally in
// the text is accepted even at the threshold score.
func (c *Catalog) FindBestMatch(text string) *Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	bestScore := minScoreThreshold
	var best *Match

	for _, tpl := range c.templates {
		score := Score(text, tpl)

		hasKeyword := false
		for _, kw := range tpl.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				hasKeyword = true
				break
			}
		}

		if (score > bestScore || (score == 0 && hasKeyword && bestScore == 0)) &&
			(score > 0 || hasKeyword) {
			bestScore = score
			best = &Match{Template: tpl, Score: score}
		}
	}

	return best
}

// Stop words stripped before counting residual content words in
// HasSpecificRequirements. The product surface is Spanish-first.
var stopWords = map[string]struct{}{
	"crea": {}, "haz": {}, "genera": {}, "hacer": {}, "crear": {}, "generar": {},
	"un": {}, "una": {}, "el": {}, "la": {}, "de": {}, "para": {}, "con": {},
	"del": {}, "las": {}, "los": {}, "que": {}, "este": {}, "esta": {},
	"estos": {}, "estas": {}, "por": {}, "porque": {},
}

// Patterns whose presence marks a request as specific rather than generic.
var specificPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(equipos?|productos?|clientes?|usuarios?|proyectos?|ventas|datos|informaci[oó]n)\b`),
	regexp.MustCompile(`(?i)\b(gesti[oó]n|administraci[oó]n|control|manejo)\s+(de|del|de la)\s+\w+`),
	regexp.MustCompile(`(?i)\bpara\s+\w+`),
	regexp.MustCompile(`(?i)\bcon\s+\w+`),
	regexp.MustCompile(`(?i)\b(moderno|profesional|simple|complejo|avanzado|especializado)\b`),
}

var digits = regexp.MustCompile(`\d+`)

// HasSpecificRequirements reports whether the request asks for more than the
// stock template: domain-specific patterns, numbers, or more than two content
// words not covered by the template's keyword sets. Generic requests take the
// template as-is; specific requests use it as a personalization base.
func HasSpecificRequirements(prompt string, tpl *Template) bool {
	if prompt == "" || tpl == nil {
		return false
	}

	for _, p := range specificPatterns {
		if p.MatchString(prompt) {
			return true
		}
	}
	if digits.MatchString(prompt) {
		return true
	}

	lower := strings.ToLower(prompt)
	residual := 0
	for _, word := range strings.Fields(lower) {
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if containsWord(tpl.Keywords, word) || synonymCovers(tpl.Synonyms, word) {
			continue
		}
		residual++
	}

	return residual > 2
}

func containsWord(list []string, word string) bool {
	for _, item := range list {
		if item == word {
			return true
		}
	}
	return false
}

func synonymCovers(synonyms []string, word string) bool {
	for _, syn := range synonyms {
		if strings.Contains(strings.ToLower(syn), word) {
			return true
		}
	}
	return false
}

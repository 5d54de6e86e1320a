package credential

import "regexp"

var (
	geminiCtorRe = regexp.MustCompile(`(?i)new GoogleGenerativeAI\(['"][^'"]*['"]\)`)
	geminiRefRe  = regexp.MustCompile(`(?i)(@google/genai|GoogleGenerativeAI|gemini)`)
)

// geminiStrategy rewrites an existing client constructor, or synthesizes the
// module-load script when the document references Gemini without
// initializing a client.
type geminiStrategy struct {
	*genericStrategy
}

func newGeminiStrategy(rule serviceRule) *geminiStrategy {
	return &geminiStrategy{genericStrategy: newGenericStrategy(rule)}
}

func (s *geminiStrategy) Inject(content, key string) string {
	if content == "" || key == "" {
		return content
	}

	out := s.replacePlaceholder(content, key)

	if geminiCtorRe.MatchString(out) {
		return geminiCtorRe.ReplaceAllLiteralString(out, s.rule.InjectTemplate(key))
	}

	script := s.initScript(key)
	if loc := geminiRefRe.FindStringIndex(out); loc != nil {
		return out[:loc[0]] + script + "\n" + out[loc[0]:]
	}

	return injectIntoDocument(out, script)
}

func (s *geminiStrategy) initScript(key string) string {
	return `<script type="module">
import { GoogleGenerativeAI } from 'https://esm.run/@google/generative-ai';
const genAI = ` + s.rule.InjectTemplate(key) + `;
window.genAI = genAI;
</script>`
}

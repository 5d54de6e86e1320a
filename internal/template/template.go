package template

// Template is a stock HTML document with the keyword sets used for matching.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Keywords are exact-match terms worth the full match score.
	Keywords []string `json:"keywords"`

	// Synonyms are alternative phrasings worth half the keyword score.
	Synonyms []string `json:"synonyms"`

	// ContextKeywords are weak topical hints worth a small bonus.
	ContextKeywords []string `json:"contextKeywords"`

	// Content is the complete HTML document. Empty in listing responses.
	Content string `json:"content,omitempty"`
}

// Info returns a copy of the template without its content, for listings.
func (t *Template) Info() Template {
	info := *t
	info.Content = ""
	return info
}

// Match is a template selected by the matcher, with its score attached.
type Match struct {
	Template *Template
	Score    int
}

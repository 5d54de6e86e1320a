package generation

import "strings"

// Level is the reasoning effort requested from the backend.
type Level string

const (
	LevelMinimal Level = "minimal"
	LevelLow     Level = "low"
	LevelMedium  Level = "medium"
	LevelHigh    Level = "high"
)

// Budget maps a level to a backend thinking-token budget.
func (l Level) Budget() int32 {
	switch l {
	case LevelMinimal:
		return 0
	case LevelLow:
		return 2048
	case LevelMedium:
		return 8192
	case LevelHigh:
		return 24576
	}
	return 2048
}

// SelectLevel picks the reasoning effort from task shape. Component edits
// are the most focused and get the fastest setting; effort grows with the
// size of the editing base and the length of the request.
func SelectLevel(request, currentContent string, hasTarget bool, placeholder string) Level {
	if hasTarget {
		return LevelMinimal
	}

	noContent := strings.TrimSpace(currentContent) == "" || currentContent == placeholder
	if noContent {
		lower := strings.ToLower(request)
		simple := len(request) < 100 &&
			!strings.Contains(lower, "complejo") &&
			!strings.Contains(lower, "avanzado")
		if simple {
			return LevelMinimal
		}
		return LevelLow
	}

	contentSize := len(currentContent)
	requestSize := len(request)

	switch {
	case contentSize < 5000 && requestSize < 200:
		return LevelMinimal
	case contentSize < 20000 && requestSize < 500:
		return LevelLow
	case contentSize > 20000 || requestSize > 500:
		return LevelMedium
	}
	return LevelLow
}

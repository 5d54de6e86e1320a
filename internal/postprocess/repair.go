package postprocess

import (
	"regexp"
	"strings"
)

const (
	tailwindMarker = "@tailwindcss/browser@4"
	motionMarker   = "motion@11.11.17"

	tailwindScript = `<script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"></script>`

	motionScript = `<script type="module">
    import { animate, scroll, stagger } from "https://cdn.jsdelivr.net/npm/motion@11.11.17/+esm";

    document.addEventListener('DOMContentLoaded', () => {
      // Animations initialized
    });
  </script>`
)

var (
	headOpenRe  = regexp.MustCompile(`(?i)<head[^>]*>`)
	headCloseRe = regexp.MustCompile(`(?i)</head>`)
)

// RepairTemplate restores the stock libraries a personalized template must
// keep. The returned list names what was repaired; an empty list means the
// document was already intact. Repair never fails and is idempotent.
func RepairTemplate(content string) (string, []string) {
	var repaired []string

	if !strings.Contains(content, tailwindMarker) {
		content = insertAfterHeadOpen(content, "\n  "+tailwindScript)
		repaired = append(repaired, "tailwind")
	}
	if !strings.Contains(content, motionMarker) {
		content = insertBeforeHeadClose(content, motionScript+"\n  ")
		repaired = append(repaired, "motion")
	}

	return content, repaired
}

func insertAfterHeadOpen(content, script string) string {
	if loc := headOpenRe.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + script + content[loc[1]:]
	}
	return content
}

func insertBeforeHeadClose(content, script string) string {
	if loc := headCloseRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + script + content[loc[0]:]
	}
	return content
}

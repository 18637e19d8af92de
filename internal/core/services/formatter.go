package services

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^\n]+?)\*\*`)
	italicStarPattern = regexp.MustCompile(`\*([^*\n]+)\*`)
	// Underscores inside words (snake_case) are left alone.
	italicUnderPattern = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\n]+)_($|[^\p{L}\p{N}_])`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// Formatter converts plain reply text into the lightweight HTML markup
// shown by the chat surfaces.
type Formatter struct{}

// Format escapes HTML, renders **bold** and *italic* / _italic_, squeezes
// runs of blank lines and turns newlines into <br>.
func (Formatter) Format(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = html.EscapeString(text)
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStarPattern.ReplaceAllString(text, "<em>$1</em>")
	text = italicUnderPattern.ReplaceAllString(text, "${1}<em>${2}</em>${3}")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.ReplaceAll(text, "\n", "<br>")
}

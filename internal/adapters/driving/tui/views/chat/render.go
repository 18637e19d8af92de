package chat

import (
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/styles"
)

// Replies use only these tags; anything else is escaped text.
var markupTag = regexp.MustCompile(`</?(?:strong|em)>|<br>`)

// Render turns reply markup into styled terminal text.
func Render(markup string, s *styles.Styles) string {
	var (
		b            strings.Builder
		bold, italic bool
		last         int
	)

	for _, loc := range markupTag.FindAllStringIndex(markup, -1) {
		writeSpan(&b, markup[last:loc[0]], bold, italic, s)
		last = loc[1]

		switch markup[loc[0]:loc[1]] {
		case "<br>":
			b.WriteByte('\n')
		case "<strong>":
			bold = true
		case "</strong>":
			bold = false
		case "<em>":
			italic = true
		case "</em>":
			italic = false
		}
	}
	writeSpan(&b, markup[last:], bold, italic, s)

	return b.String()
}

func writeSpan(b *strings.Builder, text string, bold, italic bool, s *styles.Styles) {
	if text == "" {
		return
	}
	text = html.UnescapeString(text)

	style := s.Normal
	switch {
	case bold && italic:
		style = s.Bold.Italic(true)
	case bold:
		style = s.Bold
	case italic:
		style = s.Italic
	}
	b.WriteString(style.Render(text))
}

// Plain strips reply markup, leaving the text passed back as history.
func Plain(markup string) string {
	text := strings.ReplaceAll(markup, "<br>", "\n")
	text = markupTag.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

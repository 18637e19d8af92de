// Package segmenter splits a tagged transcript into topic blocks.
//
// A transcript is plain text containing markers of the form
//
//	[TOPIC: tag1, tag2, ...] free text until the next marker
//
// The Portuguese label TEMA is accepted as well, in any letter case.
package segmenter

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/normalisers/textkey"
)

// markerPattern matches one topic marker and captures its tag list.
var markerPattern = regexp.MustCompile(`(?i)\[\s*(?:topic|tema)\s*:([^\]]*)\]`)

// Segment splits raw into topic blocks in document order.
// Each block's content ends at the next marker. Text before the first marker
// is ignored, and a marker with no usable tags yields no block.
// A document without markers yields an empty slice.
func Segment(raw string) []domain.TopicBlock {
	matches := markerPattern.FindAllStringSubmatchIndex(raw, -1)
	blocks := make([]domain.TopicBlock, 0, len(matches))

	for i, m := range matches {
		tags := splitTags(raw[m[2]:m[3]])
		if len(tags) == 0 {
			continue
		}

		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(raw[m[1]:end])

		blocks = append(blocks, domain.TopicBlock{
			Tags:       tags,
			Content:    content,
			Normalised: textkey.Normalise(content),
		})
	}

	return blocks
}

// splitTags normalises a comma-separated tag list, dropping empty and duplicate tags.
func splitTags(list string) []string {
	parts := strings.Split(list, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		tag := textkey.Normalise(p)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

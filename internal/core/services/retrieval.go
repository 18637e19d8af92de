package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/normalisers/textkey"
)

const (
	// minKeywordRunes is the exclusive lower bound on keyword length.
	minKeywordRunes = 3

	// tagWeight multiplies tag hits so that topic labels outrank body mentions.
	tagWeight = 3
)

// Retriever ranks topic blocks against a question and assembles the
// context string handed to the model. It holds no state.
type Retriever struct{}

// Rank scores every block against the question and returns the blocks with
// a positive score, best first. Ties keep corpus order.
func (Retriever) Rank(question string, blocks []domain.TopicBlock) []domain.ScoredBlock {
	if len(blocks) == 0 {
		return nil
	}
	keywords := textkey.Keywords(question, minKeywordRunes)
	if len(keywords) == 0 {
		return nil
	}

	var ranked []domain.ScoredBlock
	for i := range blocks {
		score := scoreBlock(keywords, &blocks[i])
		if score <= 0 {
			continue
		}
		ranked = append(ranked, domain.ScoredBlock{
			Block:    blocks[i],
			Score:    score,
			Position: i,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

// Context joins the contents of the top maxBlocks ranked blocks with a
// single space and truncates the result to maxLength runes.
func (r Retriever) Context(question string, blocks []domain.TopicBlock, maxBlocks, maxLength int) string {
	if maxBlocks <= 0 || maxLength <= 0 {
		return ""
	}
	return JoinContext(r.Rank(question, blocks), maxBlocks, maxLength)
}

// JoinContext builds the context string from an already ranked slice.
func JoinContext(ranked []domain.ScoredBlock, maxBlocks, maxLength int) string {
	if maxBlocks <= 0 || maxLength <= 0 || len(ranked) == 0 {
		return ""
	}
	if len(ranked) > maxBlocks {
		ranked = ranked[:maxBlocks]
	}

	parts := make([]string, 0, len(ranked))
	for _, sb := range ranked {
		parts = append(parts, sb.Block.Content)
	}
	return truncateRunes(strings.Join(parts, " "), maxLength)
}

func scoreBlock(keywords []string, block *domain.TopicBlock) int {
	content := block.Normalised
	if content == "" && block.Content != "" {
		content = textkey.Normalise(block.Content)
	}

	tagScore, contentScore := 0, 0
	for _, kw := range keywords {
		for _, tag := range block.Tags {
			if strings.Contains(tag, kw) {
				tagScore++
			}
		}
		if strings.Contains(content, kw) {
			contentScore++
		}
	}
	return tagWeight*tagScore + contentScore
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

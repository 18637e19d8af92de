package domain

import "time"

// TopicBlock is a tagged segment of the course transcript.
// It is the unit of retrieval and is immutable once segmented.
type TopicBlock struct {
	// Tags are the normalised topic tags. Never empty.
	Tags []string

	// Content is the raw transcript span, trimmed.
	Content string

	// Normalised is the normalised form of Content, computed once at segmentation.
	Normalised string
}

// ScoredBlock is a TopicBlock ranked against a single question.
type ScoredBlock struct {
	Block TopicBlock

	// Score is tag matches * 3 + content matches.
	Score int

	// Position is the block's index in corpus order.
	Position int
}

// Corpus is an immutable snapshot of the segmented transcript.
// Reloads build a new Corpus; an existing one is never mutated.
type Corpus struct {
	// Blocks are the topic blocks in document order.
	Blocks []TopicBlock

	// Source identifies where the corpus was read from (usually a file path).
	Source string

	// LoadedAt is when the snapshot was built.
	LoadedAt time.Time
}

// CorpusStats summarises a corpus snapshot.
type CorpusStats struct {
	Source   string
	Blocks   int
	Tags     int
	Bytes    int
	LoadedAt time.Time
}

// Stats computes summary figures for the corpus.
func (c *Corpus) Stats() CorpusStats {
	if c == nil {
		return CorpusStats{}
	}
	stats := CorpusStats{
		Source:   c.Source,
		Blocks:   len(c.Blocks),
		LoadedAt: c.LoadedAt,
	}
	for i := range c.Blocks {
		stats.Tags += len(c.Blocks[i].Tags)
		stats.Bytes += len(c.Blocks[i].Content)
	}
	return stats
}

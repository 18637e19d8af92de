package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCorpus_Stats(t *testing.T) {
	loaded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Corpus{
		Source:   "transcricao.txt",
		LoadedAt: loaded,
		Blocks: []TopicBlock{
			{Tags: []string{"a", "b"}, Content: "abc"},
			{Tags: []string{"c"}, Content: "de"},
		},
	}

	stats := c.Stats()

	assert.Equal(t, "transcricao.txt", stats.Source)
	assert.Equal(t, 2, stats.Blocks)
	assert.Equal(t, 3, stats.Tags)
	assert.Equal(t, 5, stats.Bytes)
	assert.Equal(t, loaded, stats.LoadedAt)
}

func TestCorpus_Stats_Nil(t *testing.T) {
	var c *Corpus
	assert.Equal(t, CorpusStats{}, c.Stats())
}

func TestScope(t *testing.T) {
	assert.True(t, ScopeIn.InScope())
	assert.False(t, ScopeOut.InScope())
	assert.Equal(t, "OUT_OF_SCOPE", ScopeOut.String())
}

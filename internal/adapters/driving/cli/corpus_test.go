package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

func TestCorpusCmd_HasSubcommands(t *testing.T) {
	var names []string
	for _, c := range corpusCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"stats", "topics"}, names)
}

func TestCorpusStatsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "corpus", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Source:    /srv/curso/transcricao.txt")
	assert.Contains(t, out, "Blocks:    2")
	assert.Contains(t, out, "Tags:      3")
	assert.Contains(t, out, "Loaded at:")
}

func TestCorpusTopicsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "corpus", "topics")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ansiedade, emocoes")
	assert.Contains(t, lines[0], "22 chars")
	assert.Contains(t, lines[1], "respiracao")
}

func TestCorpusTopicsCmd_NotLoaded(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusService = &mockCorpusService{corpus: (*domain.Corpus)(nil)}

	out, err := execute(t, "corpus", "topics")

	require.NoError(t, err)
	assert.Contains(t, out, "No topics loaded.")
}

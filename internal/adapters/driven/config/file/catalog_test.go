package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

func TestCatalogStore_EmbeddedDefault(t *testing.T) {
	catalog, err := NewCatalogStore("").Load()

	require.NoError(t, err)
	require.NotEmpty(t, catalog.Canonical)
	assert.Equal(t, "Qual é o objetivo principal do Dossiê 007?", catalog.Canonical[0].Question)
	assert.Contains(t, catalog.Canonical[0].Answer, "Dossiê 007")

	types := make([]string, 0, len(catalog.Types))
	for _, tk := range catalog.Types {
		types = append(types, tk.Type)
	}
	assert.Equal(t, []string{"crise", "exercicio", "resumo", "conceito", "explicacao"}, types)
}

func TestCatalogStore_LoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
[[canonical]]
question = "Quando começa o curso?"
answer = "Na segunda-feira."

[[types]]
type = "exercicio"
keywords = ["exercicio"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	catalog, err := NewCatalogStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, []domain.CanonicalEntry{{Question: "Quando começa o curso?", Answer: "Na segunda-feira."}},
		catalog.Canonical)
	assert.Equal(t, []domain.TypeKeywords{{Type: "exercicio", Keywords: []string{"exercicio"}}}, catalog.Types)
}

func TestCatalogStore_LoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.YML")
	content := `
canonical:
  - question: Onde fica o material?
    answer: Na área do aluno.
types:
  - type: resumo
    keywords: [resumo, resumir]
  - type: conceito
    keywords: ["o que e"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	catalog, err := NewCatalogStore(path).Load()

	require.NoError(t, err)
	require.Len(t, catalog.Canonical, 1)
	assert.Equal(t, "Na área do aluno.", catalog.Canonical[0].Answer)
	require.Len(t, catalog.Types, 2)
	assert.Equal(t, "resumo", catalog.Types[0].Type)
	assert.Equal(t, []string{"o que e"}, catalog.Types[1].Keywords)
}

func TestCatalogStore_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unsupported extension", "catalog.json", `{}`},
		{"broken toml", "catalog.toml", `[[canonical]`},
		{"broken yaml", "catalog.yaml", "canonical: [\n"},
		{"missing answer", "missing.toml", "[[canonical]]\nquestion = \"x\"\n"},
		{"unnamed type", "unnamed.toml", "[[types]]\nkeywords = [\"a\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := NewCatalogStore(path).Load()

			assert.Error(t, err)
		})
	}

	_, err := NewCatalogStore(filepath.Join(dir, "absent.toml")).Load()
	assert.Error(t, err)
}

func TestDefaultCatalog_ReturnsCopy(t *testing.T) {
	a := DefaultCatalog()
	a[0] = 'X'

	assert.NotEqual(t, a[0], DefaultCatalog()[0])
}

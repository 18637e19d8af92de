package file

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

//go:embed defaults/catalog.toml
var defaultCatalog []byte

// catalogFile is the on-disk shape shared by the TOML and YAML formats.
type catalogFile struct {
	Canonical []struct {
		Question string `toml:"question" yaml:"question"`
		Answer   string `toml:"answer" yaml:"answer"`
	} `toml:"canonical" yaml:"canonical"`
	Types []struct {
		Type     string   `toml:"type" yaml:"type"`
		Keywords []string `toml:"keywords" yaml:"keywords"`
	} `toml:"types" yaml:"types"`
}

// CatalogStore reads the canonical-answer and keyword tables from a file.
// The format follows the extension: .toml, or .yaml/.yml.
type CatalogStore struct {
	path string
}

// NewCatalogStore creates a catalog store. An empty path serves the
// embedded default catalog.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Path returns the catalog file path, empty for the embedded catalog.
func (s *CatalogStore) Path() string {
	return s.path
}

// Load parses the catalog.
func (s *CatalogStore) Load() (domain.Catalog, error) {
	if s.path == "" {
		return parseCatalog(defaultCatalog, ".toml")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := parseCatalog(data, strings.ToLower(filepath.Ext(s.path)))
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	return catalog, nil
}

// DefaultCatalog returns the embedded catalog source, for `tutor init`-style export.
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalog...)
}

func parseCatalog(data []byte, ext string) (domain.Catalog, error) {
	var raw catalogFile
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return domain.Catalog{}, fmt.Errorf("%w: unsupported catalog format %q", domain.ErrInvalidInput, ext)
	}

	catalog := domain.Catalog{
		Canonical: make([]domain.CanonicalEntry, 0, len(raw.Canonical)),
		Types:     make([]domain.TypeKeywords, 0, len(raw.Types)),
	}
	for i, c := range raw.Canonical {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			return domain.Catalog{}, fmt.Errorf("%w: canonical entry %d needs a question and an answer",
				domain.ErrInvalidInput, i+1)
		}
		catalog.Canonical = append(catalog.Canonical, domain.CanonicalEntry{
			Question: c.Question,
			Answer:   strings.TrimSpace(c.Answer),
		})
	}
	for i, t := range raw.Types {
		if strings.TrimSpace(t.Type) == "" {
			return domain.Catalog{}, fmt.Errorf("%w: type entry %d has no name", domain.ErrInvalidInput, i+1)
		}
		catalog.Types = append(catalog.Types, domain.TypeKeywords{
			Type:     strings.TrimSpace(t.Type),
			Keywords: t.Keywords,
		})
	}
	return catalog, nil
}

package file

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed defaults/*.txt
var defaultPromptFS embed.FS

// defaultPrompts holds the embedded templates keyed by prompt name.
var defaultPrompts = mustLoadDefaults()

// PromptStore loads prompt templates from user-editable files on disk,
// falling back to the embedded defaults.
//
// Initialisation is lazy: the directory and default files are only
// created on the first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.tutor/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPromptNames lists the prompts shipped with the binary, sorted.
func DefaultPromptNames() []string {
	names := make([]string, 0, len(defaultPrompts))
	for name := range defaultPrompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the prompt template for the given name.
// A file on disk wins over the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and writes missing defaults.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk. Blank files count as missing.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt file %q is empty", name)
	}
	return prompt, nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	var files strings.Builder
	for _, name := range DefaultPromptNames() {
		files.WriteString("- `" + name + ".txt`\n")
	}

	content := `# Tutor Prompts

Editable prompt templates used when the tutor asks a language model for an answer.

## Files

` + files.String() + `
- ` + "`persona.txt`" + ` sets the tutor's voice for every generated answer.
- ` + "`type_<tipo>.txt`" + ` adds instructions for one question type from the catalog.
- ` + "`summarise.txt`" + ` keeps the ` + "`%d`" + ` (max length) and ` + "`%s`" + ` (content) placeholders.

The answer language is always Brazilian Portuguese regardless of these files.
Changes take effect the next time the tutor starts.
`
	return os.WriteFile(path, []byte(content), 0600)
}

func mustLoadDefaults() map[string]string {
	entries, err := fs.Glob(defaultPromptFS, "defaults/*.txt")
	if err != nil {
		panic(err)
	}
	prompts := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := defaultPromptFS.ReadFile(entry)
		if err != nil {
			panic(err)
		}
		name := strings.TrimSuffix(filepath.Base(entry), ".txt")
		prompts[name] = strings.TrimSpace(string(data))
	}
	return prompts
}

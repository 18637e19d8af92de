// Package file reads the course transcript from disk and watches it for edits.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source reads a transcript file.
type Source struct {
	path string
}

// NewSource creates a source for path. Relative paths are made absolute
// so that the watcher and the reader agree on the file.
func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: transcript path is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve transcript path: %w", err)
	}
	return &Source{path: abs}, nil
}

// Read returns the transcript text with any byte order mark removed.
func (s *Source) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrInvalidInput, s.path)
	}
	return string(data), nil
}

// Name returns the absolute file path.
func (s *Source) Name() string {
	return s.path
}

// Path returns the absolute file path.
func (s *Source) Path() string {
	return s.path
}

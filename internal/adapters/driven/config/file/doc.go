// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: editable prompt templates with embedded defaults
//   - CatalogStore: canonical answers and question-type keywords (TOML or YAML)
package file

package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptPersona is the system instruction fixing the tutor's persona,
	// tone and answer language. It has no format placeholders.
	PromptPersona = "persona"

	// PromptTypePrefix prefixes per-type instruction templates, e.g. "type_exercicio".
	// These prompts have no format placeholders.
	PromptTypePrefix = "type_"

	// PromptSummarise creates summaries of supplementary documents.
	// The prompt template expects %d (max length) and %s (content) placeholders.
	PromptSummarise = "summarise"
)

// PromptForType returns the prompt name holding instructions for a prompt type.
func PromptForType(promptType string) string {
	return PromptTypePrefix + promptType
}

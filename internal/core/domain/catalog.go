package domain

// Well-known prompt types. The keyword table may introduce others.
const (
	// PromptTypeFAQ marks a canonical (scripted) answer.
	PromptTypeFAQ = "faq"

	// PromptTypeExplanation is the fallback type for generic explanations.
	PromptTypeExplanation = "explicacao"
)

// CanonicalEntry is a curated exact-match question and its scripted answer.
type CanonicalEntry struct {
	// Question is the normalised question text and the lookup key.
	Question string

	// Answer is returned verbatim, never paraphrased by a model.
	Answer string
}

// TypeKeywords associates a prompt type with the keywords that select it.
type TypeKeywords struct {
	Type     string
	Keywords []string
}

// Catalog holds the fixed mappings loaded once at start-up.
// Types is a priority order: the first type whose keywords match wins.
type Catalog struct {
	Canonical []CanonicalEntry
	Types     []TypeKeywords
}

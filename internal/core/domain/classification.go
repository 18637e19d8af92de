package domain

// Scope states whether a question falls within the course domain.
type Scope string

// Available scopes.
const (
	ScopeIn  Scope = "IN_SCOPE"
	ScopeOut Scope = "OUT_OF_SCOPE"
)

// String returns the string representation.
func (s Scope) String() string {
	return string(s)
}

// InScope reports whether the scope is IN_SCOPE.
func (s Scope) InScope() bool {
	return s == ScopeIn
}

// ClassificationResult is the outcome of classifying a question.
type ClassificationResult struct {
	Scope Scope
	Type  string
}

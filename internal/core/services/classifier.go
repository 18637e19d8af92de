package services

import (
	"strings"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/normalisers/textkey"
)

// CanonicalMatcher looks up scripted answers by normalised question.
type CanonicalMatcher struct {
	answers map[string]string
}

// NewCanonicalMatcher builds a matcher from catalog entries.
// Keys are normalised here; on duplicate keys the first entry wins.
func NewCanonicalMatcher(entries []domain.CanonicalEntry) *CanonicalMatcher {
	answers := make(map[string]string, len(entries))
	for _, e := range entries {
		key := textkey.Normalise(e.Question)
		if key == "" {
			continue
		}
		if _, exists := answers[key]; exists {
			continue
		}
		answers[key] = e.Answer
	}
	return &CanonicalMatcher{answers: answers}
}

// Lookup returns the scripted answer for a question, if any.
func (m *CanonicalMatcher) Lookup(question string) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.lookupKey(textkey.Normalise(question))
}

// Len returns the number of distinct canonical questions.
func (m *CanonicalMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.answers)
}

func (m *CanonicalMatcher) lookupKey(key string) (string, bool) {
	if m == nil || key == "" {
		return "", false
	}
	answer, ok := m.answers[key]
	return answer, ok
}

// TypeRule selects a prompt type when Match accepts the normalised question.
type TypeRule struct {
	Type  string
	Match func(normalisedQuestion string) bool
}

// KeywordRule matches when any keyword occurs as a substring of the
// normalised question. Keywords are normalised; empty ones are ignored.
func KeywordRule(promptType string, keywords ...string) TypeRule {
	keys := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if k := textkey.Normalise(kw); k != "" {
			keys = append(keys, k)
		}
	}
	return TypeRule{
		Type: promptType,
		Match: func(q string) bool {
			for _, k := range keys {
				if strings.Contains(q, k) {
					return true
				}
			}
			return false
		},
	}
}

// RulesFromCatalog converts the catalog's ordered keyword table into rules.
func RulesFromCatalog(types []domain.TypeKeywords) []TypeRule {
	rules := make([]TypeRule, 0, len(types))
	for _, t := range types {
		if t.Type == "" {
			continue
		}
		rules = append(rules, KeywordRule(t.Type, t.Keywords...))
	}
	return rules
}

// Classifier routes questions to a scope and prompt type.
type Classifier struct {
	canonical *CanonicalMatcher
	rules     []TypeRule
}

// NewClassifier creates a classifier. Rules are evaluated in order.
func NewClassifier(canonical *CanonicalMatcher, rules []TypeRule) *Classifier {
	if canonical == nil {
		canonical = NewCanonicalMatcher(nil)
	}
	return &Classifier{
		canonical: canonical,
		rules:     append([]TypeRule(nil), rules...),
	}
}

// NewClassifierFromCatalog builds the matcher and rules from a catalog.
func NewClassifierFromCatalog(catalog domain.Catalog) *Classifier {
	return NewClassifier(NewCanonicalMatcher(catalog.Canonical), RulesFromCatalog(catalog.Types))
}

// Canonical returns the matcher backing the first classification step.
func (c *Classifier) Canonical() *CanonicalMatcher {
	return c.canonical
}

// Classify returns the scope and prompt type for a question.
// Canonical questions are IN_SCOPE/faq, the first matching rule decides
// otherwise, and anything unmatched is OUT_OF_SCOPE.
func (c *Classifier) Classify(question string) domain.ClassificationResult {
	key := textkey.Normalise(question)

	if _, ok := c.canonical.lookupKey(key); ok {
		return domain.ClassificationResult{Scope: domain.ScopeIn, Type: domain.PromptTypeFAQ}
	}

	if key != "" {
		for _, rule := range c.rules {
			if rule.Match != nil && rule.Match(key) {
				return domain.ClassificationResult{Scope: domain.ScopeIn, Type: rule.Type}
			}
		}
	}

	return domain.ClassificationResult{Scope: domain.ScopeOut, Type: domain.PromptTypeExplanation}
}

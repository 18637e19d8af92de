// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// A question flows through ChatService in a fixed order:
//
//   - canonical lookup (CanonicalMatcher)
//   - scope and prompt type (Classifier)
//   - context retrieval over the corpus snapshot (Retriever)
//   - reply composition through the model chain (Composer, ModelChain)
//   - HTML formatting (Formatter) and the audit record
//
// Services are pure Go with no CGO. They reach models, storage and
// the transcript only through driven ports.
package services

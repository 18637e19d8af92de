// Package domain defines the core business entities for the tutor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TopicBlock: A tagged segment of the course transcript
//   - Corpus: An immutable snapshot of all topic blocks
//   - Catalog: Canonical answers and the ordered prompt-type keyword table
//   - InteractionRecord: One persisted question/answer turn
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

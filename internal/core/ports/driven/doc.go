// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusSource: Reads the tagged course transcript
//   - CatalogStore: Canonical answers and prompt-type keyword table
//   - InteractionStore: Append-only interaction log
//   - ConfigStore: Application configuration
//   - PromptStore: Persona and per-type prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model tiers. Without them, in-scope questions that need
//     a generated answer receive the safe default reply.
//   - CorpusWatcher: Hot reload of the transcript.
//   - TokenVerifier: Bearer-token authentication for the HTTP surface.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

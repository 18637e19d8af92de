package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates no language model tier is configured.
	// Generative answers are disabled; canned and out-of-scope replies still work.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrGenerationFailed indicates every configured model tier failed.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrCorpusUnavailable indicates the transcript corpus could not be read.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrCorpusEmpty indicates the corpus was read but contains no topic blocks.
	// Serving with an empty corpus would classify every question as out of scope.
	ErrCorpusEmpty = errors.New("corpus contains no topic blocks")

	// ErrUnauthorized indicates the caller's token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrVerseUnresolved indicates a morphology record's verse reference
	// has no entry in the verse text source. The two corpus files are out
	// of sync; this is a data-integrity failure, never skipped silently.
	ErrVerseUnresolved = errors.New("verse reference unresolved")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Bulk annotation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

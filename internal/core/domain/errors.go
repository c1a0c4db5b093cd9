package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// The embedding cache returns it for a cold fingerprint.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input,
	// such as a chat request missing the session id or message.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding provider failed.
	// The pipeline degrades to an empty vector rather than surfacing
	// this to the caller; it exists so the degrade is a typed, logged
	// outcome instead of a silently swallowed error.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionFailed indicates the generation provider failed.
	// Unlike embedding failures this is surfaced to the caller as a
	// server error; the transcript is not written for that turn.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrIndexNotReady indicates a chat request arrived before the
	// knowledge index finished building. The composition root gates
	// listener startup on indexing, so hitting this is a wiring bug.
	ErrIndexNotReady = errors.New("knowledge index not ready")
)

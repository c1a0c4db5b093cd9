package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is a single knowledge-base entry. The knowledge base is a small
// fixed set of documents loaded once at startup; after indexing, documents
// are immutable for the lifetime of the process.
type Document struct {
	// Content is the full text of the entry.
	Content string

	// Embedding is the vector representation, populated during indexing.
	// A nil or empty embedding means the document carries no semantic
	// signal and scores zero against every query.
	Embedding []float32
}

// MatchResult is the outcome of ranking a query against the knowledge index.
// It is ephemeral and never persisted.
type MatchResult struct {
	// Document is the best-matching entry, or nil when no document
	// cleared the relevance guardrail.
	Document *Document

	// Score is the relevance score in [0, 1]. It is derived from cosine
	// similarity except where an override rule rewrote it.
	Score float64
}

// Fingerprint returns the cache key for a piece of text: the hex-encoded
// SHA-256 digest of the exact bytes. The same text always maps to the same
// vector for a fixed provider and model, so the fingerprint is stable.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

package driven

import "context"

// EmbeddingCache maps a content fingerprint to a previously computed vector
// so identical text never re-triggers a provider call.
//
// The cache is unbounded and never evicts: the knowledge base is small and
// fixed, and query diversity is bounded in practice. Entries are keyed by
// domain.Fingerprint of the exact text.
type EmbeddingCache interface {
	// Get returns the cached vector for the text, or domain.ErrNotFound
	// when the fingerprint has not been seen.
	Get(ctx context.Context, text string) ([]float32, error)

	// Put stores the vector under the text's fingerprint. Puts are
	// insert-or-ignore: an existing entry is never overwritten, because
	// a given text always maps to the same vector for a fixed model.
	Put(ctx context.Context, text string, embedding []float32) error
}

package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache is an in-memory implementation of driven.EmbeddingCache.
type EmbeddingCache struct {
	mu      sync.RWMutex
	entries map[string][]float32
}

// NewEmbeddingCache creates an empty in-memory embedding cache.
func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{entries: make(map[string][]float32)}
}

// Get returns the cached vector, or domain.ErrNotFound on a cold key.
func (c *EmbeddingCache) Get(_ context.Context, text string) ([]float32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vec, ok := c.entries[domain.Fingerprint(text)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return vec, nil
}

// Put stores the vector; existing entries are never overwritten.
func (c *EmbeddingCache) Put(_ context.Context, text string, embedding []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := domain.Fingerprint(text)
	if _, ok := c.entries[key]; ok {
		return nil
	}
	c.entries[key] = embedding
	return nil
}

// Len returns the number of cached entries. Test helper.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

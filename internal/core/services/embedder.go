package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
	"github.com/custodia-labs/samchat/internal/logger"
)

// CachedEmbedder composes the embedding cache and the remote provider.
// The cache is consulted first so identical text never re-triggers a
// provider call; cache failures of any kind are treated as misses.
type CachedEmbedder struct {
	cache    driven.EmbeddingCache
	provider driven.EmbeddingService
}

// NewCachedEmbedder creates a cached embedder. The cache may be nil,
// in which case every call goes to the provider.
func NewCachedEmbedder(cache driven.EmbeddingCache, provider driven.EmbeddingService) *CachedEmbedder {
	return &CachedEmbedder{cache: cache, provider: provider}
}

// Embed returns the vector for the given text, consulting the cache first.
// On a miss the provider is called once and the result persisted.
//
// Provider failures are returned as errors wrapping
// domain.ErrEmbeddingUnavailable; callers in the pipeline degrade to an
// empty vector (no semantic signal) rather than failing the request.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.cache != nil {
		cached, err := e.cache.Get(ctx, text)
		if err == nil {
			logger.Debug("Embedding cache hit for %q", truncate(text, 40))
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			// Unavailable cache is a miss, not a failure.
			logger.Warn("Embedding cache read failed, treating as miss: %v", err)
		}
	}

	vec, err := e.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, text, vec); err != nil {
			logger.Warn("Embedding cache write failed: %v", err)
		}
	}

	return vec, nil
}

// EmbedOrEmpty applies the pipeline's degrade policy: a provider failure
// yields a nil vector, which scores zero against every document and falls
// through the guardrail to a refusal. The degrade is logged so an outage
// is observable rather than silent.
func (e *CachedEmbedder) EmbedOrEmpty(ctx context.Context, text string) []float32 {
	vec, err := e.Embed(ctx, text)
	if err != nil {
		logger.Warn("Embedding degraded to empty vector: %v", err)
		return nil
	}
	return vec
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

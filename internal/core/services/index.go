package services

import (
	"context"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/logger"
)

// KnowledgeIndex is the immutable, fully-embedded document set the ranker
// searches. It is built once at startup, before the server accepts any
// chat request; the composition root enforces that ordering.
type KnowledgeIndex struct {
	docs []domain.Document
}

// BuildIndex embeds every document sequentially through the embedder.
// Document order is preserved because the ranker breaks score ties by
// load order.
//
// A provider failure for a single document degrades that document to an
// empty embedding (it will score zero against every query) instead of
// failing the build, matching the embed degrade policy.
func BuildIndex(ctx context.Context, docs []domain.Document, embedder *CachedEmbedder) (*KnowledgeIndex, error) {
	logger.Section("Indexing")

	indexed := make([]domain.Document, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		indexed[i] = domain.Document{
			Content:   doc.Content,
			Embedding: embedder.EmbedOrEmpty(ctx, doc.Content),
		}
		logger.Debug("Indexed document %d/%d (%d dims)", i+1, len(docs), len(indexed[i].Embedding))
	}

	logger.Info("Knowledge base indexed: %d documents", len(indexed))
	return &KnowledgeIndex{docs: indexed}, nil
}

// Documents returns the indexed documents in load order.
// Callers must not mutate the returned slice.
func (idx *KnowledgeIndex) Documents() []domain.Document {
	return idx.docs
}

// Len returns the number of indexed documents.
func (idx *KnowledgeIndex) Len() int {
	return len(idx.docs)
}

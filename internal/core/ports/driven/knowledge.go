package driven

import (
	"context"

	"github.com/custodia-labs/samchat/internal/core/domain"
)

// KnowledgeSource loads the fixed knowledge-base documents at startup.
// Documents are returned in load order, which the ranker uses for
// deterministic tie-breaking.
type KnowledgeSource interface {
	// Load reads and returns all documents, without embeddings.
	Load(ctx context.Context) ([]domain.Document, error)
}

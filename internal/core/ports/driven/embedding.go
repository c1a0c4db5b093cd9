package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations talk to an OpenAI-compatible embeddings endpoint
// (OpenRouter, OpenAI, Azure). Provider failures are returned as errors;
// the degrade-to-empty-vector policy lives in the core, not here.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}

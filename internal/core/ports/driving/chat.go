package driving

import (
	"context"

	"github.com/custodia-labs/samchat/internal/core/domain"
)

// ChatService is the inbound port for the response-routing pipeline.
type ChatService interface {
	// Respond handles one user message end-to-end: intent short-circuit,
	// semantic retrieval with the relevance guardrail, and grounded
	// generation. It returns domain.ErrInvalidInput for a missing
	// session id or message, and a wrapped domain.ErrCompletionFailed
	// when the generation provider fails.
	Respond(ctx context.Context, sessionID, message string) (*domain.ChatReply, error)

	// History returns the session transcript ordered oldest-first.
	History(ctx context.Context, sessionID string) ([]domain.Message, error)
}

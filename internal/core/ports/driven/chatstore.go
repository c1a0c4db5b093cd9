package driven

import (
	"context"

	"github.com/custodia-labs/samchat/internal/core/domain"
)

// ChatStore persists sessions and the append-only conversation transcript.
// Implementations are responsible for safe concurrent access; the core
// does no locking of its own.
type ChatStore interface {
	// EnsureSession creates the session if it does not exist yet.
	// Idempotent: calling it for a known id is a no-op.
	EnsureSession(ctx context.Context, sessionID string) error

	// AppendMessage appends one turn to the session transcript.
	AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) error

	// RecentMessages returns up to n messages for the session ordered
	// newest-first. Callers reverse to chronological order for prompts.
	RecentMessages(ctx context.Context, sessionID string, n int) ([]domain.Message, error)

	// AllMessages returns the full transcript ordered oldest-first.
	AllMessages(ctx context.Context, sessionID string) ([]domain.Message, error)
}

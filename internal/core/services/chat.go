package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
	"github.com/custodia-labs/samchat/internal/core/ports/driving"
	"github.com/custodia-labs/samchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// DefaultHistoryLimit is how many prior messages are included in the
// generation prompt.
const DefaultHistoryLimit = 10

// RefusalReply is returned when no knowledge document clears the
// relevance guardrail. It costs zero tokens and makes no provider call.
const RefusalReply = "I'm sorry, I only have information on shipping and refunds. Could you please rephrase your question?"

// systemPromptFormat restricts the model to the matched document's
// content, reinforces the return/refund routing rule, and carries the
// recent conversation as context.
const systemPromptFormat = "You are Sam. Use ONLY: %s. If a user asks for 'return', use the refund info. Context:\n%s"

// ChatService routes each incoming message through the pipeline:
// intent short-circuit, semantic retrieval with the guardrail, then
// grounded generation.
type ChatService struct {
	store        driven.ChatStore
	llm          driven.CompletionService
	embedder     *CachedEmbedder
	intents      *IntentMatcher
	ranker       *Ranker
	index        *KnowledgeIndex
	historyLimit int
}

// NewChatService creates the pipeline service. The index must be fully
// built before the first Respond call; passing a nil index is a wiring
// bug surfaced as domain.ErrIndexNotReady at request time.
func NewChatService(
	store driven.ChatStore,
	llm driven.CompletionService,
	embedder *CachedEmbedder,
	intents *IntentMatcher,
	ranker *Ranker,
	index *KnowledgeIndex,
	historyLimit int,
) *ChatService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &ChatService{
		store:        store,
		llm:          llm,
		embedder:     embedder,
		intents:      intents,
		ranker:       ranker,
		index:        index,
		historyLimit: historyLimit,
	}
}

// Respond handles one user message end-to-end.
func (s *ChatService) Respond(ctx context.Context, sessionID, message string) (*domain.ChatReply, error) {
	if sessionID == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.index == nil {
		return nil, domain.ErrIndexNotReady
	}

	logger.Section("Chat Request")
	cleaned := strings.ToLower(strings.TrimSpace(message))
	logger.Debug("Session %s: %q", sessionID, truncate(cleaned, 60))

	// Priority 1: intent short-circuit. Zero cost, no provider calls.
	if intent := s.intents.Match(cleaned); intent != nil {
		if err := s.store.EnsureSession(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("ensure session: %w", err)
		}
		if err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, intent.Reply); err != nil {
			return nil, fmt.Errorf("append intent reply: %w", err)
		}
		return &domain.ChatReply{Reply: intent.Reply, TokensUsed: 0}, nil
	}

	// Priority 2: semantic retrieval. A provider outage degrades the
	// query vector to empty, which scores zero everywhere and falls
	// through the guardrail to a refusal.
	queryVec := s.embedder.EmbedOrEmpty(ctx, cleaned)
	match := s.ranker.Rank(queryVec, cleaned, s.index.Documents())

	if match.Document == nil {
		logger.Info("Guardrail refusal for session %s (score %.3f)", sessionID, match.Score)
		return &domain.ChatReply{Reply: RefusalReply, TokensUsed: 0}, nil
	}

	// Grounded generation from the matched document plus recent history.
	reply, err := s.generate(ctx, sessionID, message, match.Document)
	if err != nil {
		return nil, err
	}

	if err := s.store.EnsureSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("ensure session: %w", err)
	}
	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, message); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}
	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, reply.Reply); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	return reply, nil
}

// generate builds the grounded prompt and calls the completion provider.
// Failures wrap domain.ErrCompletionFailed and leave the transcript
// untouched for this turn.
func (s *ChatService) generate(ctx context.Context, sessionID, message string, doc *domain.Document) (*domain.ChatReply, error) {
	history, err := s.store.RecentMessages(ctx, sessionID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(systemPromptFormat, doc.Content, renderHistory(history))},
		{Role: "user", Content: message},
	}

	completion, err := s.llm.Complete(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}

	logger.Debug("Generated reply (%d tokens)", completion.TotalTokens)
	return &domain.ChatReply{Reply: completion.Content, TokensUsed: completion.TotalTokens}, nil
}

// renderHistory turns newest-first messages into chronological
// "role: content" lines for the system prompt.
func renderHistory(newestFirst []domain.Message) string {
	lines := make([]string, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%s: %s", newestFirst[i].Role, newestFirst[i].Content))
	}
	return strings.Join(lines, "\n")
}

// History returns the full session transcript ordered oldest-first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.AllMessages(ctx, sessionID)
}

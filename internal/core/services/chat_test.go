package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCompletionService implements driven.CompletionService for testing.
type mockCompletionService struct {
	reply       string
	tokens      int
	completeErr error
	calls       int
	lastPrompt  []driven.ChatMessage
}

func (m *mockCompletionService) Complete(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (*driven.Completion, error) {
	m.calls++
	m.lastPrompt = messages
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	return &driven.Completion{Content: m.reply, TotalTokens: m.tokens}, nil
}

func (m *mockCompletionService) ModelName() string {
	return "mock-llm"
}

// --- Test helpers ---

// queryEmbedder maps query texts to fixed vectors so tests control the
// similarity the ranker sees. Unknown texts embed to the zero value.
type queryEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (q *queryEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	q.calls++
	return q.vectors[text], nil
}

func (q *queryEmbedder) ModelName() string {
	return "mock-embed"
}

type chatFixture struct {
	service  *ChatService
	store    *memory.ChatStore
	llm      *mockCompletionService
	embedder *queryEmbedder
}

// newChatFixture builds a pipeline over two pre-embedded documents: the
// shipping doc along [1,0] and the refund doc along [0,1].
func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	store := memory.NewChatStore()
	llm := &mockCompletionService{reply: "Grounded answer.", tokens: 42}
	embedder := &queryEmbedder{vectors: map[string][]float32{}}

	index := &KnowledgeIndex{docs: []domain.Document{
		{Content: "Shipping takes 5-7 business days.", Embedding: []float32{1, 0}},
		{Content: "Refunds are issued within 30 days of return delivery.", Embedding: []float32{0, 1}},
	}}

	service := NewChatService(
		store,
		llm,
		NewCachedEmbedder(nil, embedder),
		NewIntentMatcher(DefaultIntents(), DefaultIntentThreshold),
		NewRanker(DefaultOverrideRules(), DefaultMinScore),
		index,
		DefaultHistoryLimit,
	)

	return &chatFixture{service: service, store: store, llm: llm, embedder: embedder}
}

// --- Tests ---

func TestChatService_Respond_IntentShortCircuit(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	reply, err := f.service.Respond(ctx, "sess-1", "hi")

	require.NoError(t, err)
	assert.Equal(t, "Hi! I'm Sam. How can I help you with our product guides today?", reply.Reply)
	assert.Equal(t, 0, reply.TokensUsed)

	// No provider touched on the fast path.
	assert.Equal(t, 0, f.embedder.calls)
	assert.Equal(t, 0, f.llm.calls)

	// Only the assistant reply is recorded.
	messages, err := f.store.AllMessages(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleAssistant, messages[0].Role)
	assert.True(t, f.store.HasSession("sess-1"))
}

func TestChatService_Respond_GroundedGeneration(t *testing.T) {
	f := newChatFixture(t)
	f.embedder.vectors["where is my refund"] = []float32{0, 1}
	ctx := context.Background()

	reply, err := f.service.Respond(ctx, "sess-1", "Where is my refund")

	require.NoError(t, err)
	assert.Equal(t, "Grounded answer.", reply.Reply)
	assert.Equal(t, 42, reply.TokensUsed)
	assert.Equal(t, 1, f.llm.calls)

	// The system prompt is restricted to the matched document.
	require.Len(t, f.llm.lastPrompt, 2)
	assert.Equal(t, "system", f.llm.lastPrompt[0].Role)
	assert.Contains(t, f.llm.lastPrompt[0].Content, "Use ONLY: Refunds are issued")
	assert.NotContains(t, f.llm.lastPrompt[0].Content, "Shipping takes")
	assert.Equal(t, "user", f.llm.lastPrompt[1].Role)
	assert.Equal(t, "Where is my refund", f.llm.lastPrompt[1].Content)

	// Both turns recorded, user first.
	messages, err := f.store.AllMessages(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "Where is my refund", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
}

func TestChatService_Respond_GuardrailRefusal(t *testing.T) {
	f := newChatFixture(t)
	// "banana" embeds to the zero value: similarity 0 everywhere.
	ctx := context.Background()

	reply, err := f.service.Respond(ctx, "sess-1", "banana")

	require.NoError(t, err)
	assert.Equal(t, RefusalReply, reply.Reply)
	assert.Equal(t, 0, reply.TokensUsed)
	assert.Equal(t, 0, f.llm.calls)

	// A refusal leaves no trace in the transcript.
	messages, err := f.store.AllMessages(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.False(t, f.store.HasSession("sess-1"))
}

func TestChatService_Respond_OverrideRescuesReturnQuestion(t *testing.T) {
	f := newChatFixture(t)
	// Nearly orthogonal to both docs: raw similarity far below the
	// guardrail, but the return/refund override forces 0.5.
	f.embedder.vectors["i want a return"] = []float32{0.02, 0.05, 0.998}
	ctx := context.Background()

	reply, err := f.service.Respond(ctx, "sess-1", "I want a return")

	require.NoError(t, err)
	assert.Equal(t, "Grounded answer.", reply.Reply)
	assert.Equal(t, 1, f.llm.calls)
	assert.Contains(t, f.llm.lastPrompt[0].Content, "Refunds are issued")
}

func TestChatService_Respond_HistoryWindowInPrompt(t *testing.T) {
	f := newChatFixture(t)
	f.embedder.vectors["what about my refund now"] = []float32{0, 1}
	ctx := context.Background()

	// Seed 12 prior turns; only the most recent 10 belong in the prompt.
	require.NoError(t, f.store.EnsureSession(ctx, "sess-1"))
	for i := 1; i <= 12; i++ {
		role := domain.RoleUser
		if i%2 == 0 {
			role = domain.RoleAssistant
		}
		require.NoError(t, f.store.AppendMessage(ctx, "sess-1", role, fmt.Sprintf("turn %d", i)))
	}

	_, err := f.service.Respond(ctx, "sess-1", "What about my refund now")
	require.NoError(t, err)

	prompt := f.llm.lastPrompt[0].Content
	assert.NotContains(t, prompt, "turn 1\n")
	assert.NotContains(t, prompt, "turn 2\n")
	assert.Contains(t, prompt, "turn 3")
	assert.Contains(t, prompt, "turn 12")

	// Chronological order within the window.
	assert.Less(t, strings.Index(prompt, "turn 3"), strings.Index(prompt, "turn 12"))
}

func TestChatService_Respond_CompletionFailureLeavesTranscriptUntouched(t *testing.T) {
	f := newChatFixture(t)
	f.embedder.vectors["where is my refund"] = []float32{0, 1}
	f.llm.completeErr = errors.New("provider timeout")
	ctx := context.Background()

	_, err := f.service.Respond(ctx, "sess-1", "Where is my refund")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompletionFailed)

	messages, storeErr := f.store.AllMessages(ctx, "sess-1")
	require.NoError(t, storeErr)
	assert.Empty(t, messages)
}

func TestChatService_Respond_InvalidInput(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.service.Respond(ctx, "", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.Respond(ctx, "sess-1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatService_Respond_NilIndex(t *testing.T) {
	service := NewChatService(
		memory.NewChatStore(),
		&mockCompletionService{},
		NewCachedEmbedder(nil, &queryEmbedder{}),
		NewIntentMatcher(DefaultIntents(), DefaultIntentThreshold),
		NewRanker(nil, DefaultMinScore),
		nil,
		DefaultHistoryLimit,
	)

	_, err := service.Respond(context.Background(), "sess-1", "shipping question")

	assert.ErrorIs(t, err, domain.ErrIndexNotReady)
}

func TestChatService_Respond_EmbeddingOutageDegradesToRefusal(t *testing.T) {
	f := newChatFixture(t)
	// An erroring provider degrades the query vector to empty.
	store := f.store
	service := NewChatService(
		store,
		f.llm,
		NewCachedEmbedder(nil, &mockEmbeddingService{embedErr: errors.New("provider down")}),
		NewIntentMatcher(DefaultIntents(), DefaultIntentThreshold),
		NewRanker(DefaultOverrideRules(), DefaultMinScore),
		&KnowledgeIndex{docs: []domain.Document{
			{Content: "Shipping takes 5-7 business days.", Embedding: []float32{1, 0}},
		}},
		DefaultHistoryLimit,
	)

	reply, err := service.Respond(context.Background(), "sess-1", "shipping question")

	require.NoError(t, err)
	assert.Equal(t, RefusalReply, reply.Reply)
	assert.Equal(t, 0, f.llm.calls)
}

func TestChatService_History(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.EnsureSession(ctx, "sess-1"))
	require.NoError(t, f.store.AppendMessage(ctx, "sess-1", domain.RoleUser, "first"))
	require.NoError(t, f.store.AppendMessage(ctx, "sess-1", domain.RoleAssistant, "second"))

	messages, err := f.service.History(ctx, "sess-1")

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestChatService_History_EmptySessionID(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.History(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenderHistory(t *testing.T) {
	newestFirst := []domain.Message{
		{Role: domain.RoleAssistant, Content: "second"},
		{Role: domain.RoleUser, Content: "first"},
	}

	rendered := renderHistory(newestFirst)

	assert.Equal(t, "user: first\nassistant: second", rendered)
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Equal(t, "", renderHistory(nil))
}

package driven

import "context"

// CompletionService produces chat completions for grounded replies.
//
// Implementations talk to an OpenAI-compatible chat-completions endpoint.
// A failed call is an error for the caller to surface; there is no silent
// fallback reply at this layer.
type CompletionService interface {
	// Complete sends the conversation to the provider and returns the
	// first choice together with the reported token usage.
	Complete(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*Completion, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string
}

// ChatMessage represents a single message in a provider conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures generation behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero means provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// Completion is the provider's answer for one generation call.
type Completion struct {
	// Content is the first choice's message content.
	Content string

	// TotalTokens is usage.total_tokens as reported by the provider,
	// zero when the provider omits usage.
	TotalTokens int
}

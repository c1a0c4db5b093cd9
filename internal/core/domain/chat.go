package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

// Message roles. The pipeline only ever writes these two.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session tracks a unique chat user. The id is caller-supplied and opaque;
// the core trusts it only for existence, never for identity.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one turn of a conversation. Messages are append-only and
// ordered by creation time (id breaks ties for same-timestamp inserts).
type Message struct {
	ID        int64
	SessionID string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// ChatReply is the user-facing outcome of one chat request.
type ChatReply struct {
	// Reply is the assistant text: a canned intent reply, the fixed
	// refusal, or a generated answer.
	Reply string

	// TokensUsed is the provider-reported total token cost. Zero for
	// intent replies and refusals, which make no generation call.
	TokensUsed int
}

// Intent is a canned exchange recognised by fuzzy matching before any
// retrieval or provider call is made.
type Intent struct {
	// Name identifies the intent (greeting, farewell, thanks).
	Name string

	// Triggers are the phrases the user message is matched against.
	Triggers []string

	// Reply is the fixed response text for this intent.
	Reply string
}

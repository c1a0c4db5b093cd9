package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
type ChatStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	messages []domain.Message
	nextID   int64
}

// NewChatStore creates an empty in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		sessions: make(map[string]domain.Session),
		nextID:   1,
	}
}

// EnsureSession creates the session if it does not exist yet.
func (s *ChatStore) EnsureSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		return nil
	}
	now := time.Now().UTC()
	s.sessions[sessionID] = domain.Session{ID: sessionID, CreatedAt: now, UpdatedAt: now}
	return nil
}

// AppendMessage appends one turn to the session transcript.
func (s *ChatStore) AppendMessage(_ context.Context, sessionID string, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, domain.Message{
		ID:        s.nextID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	s.nextID++
	return nil
}

// RecentMessages returns up to n messages ordered newest-first.
func (s *ChatStore) RecentMessages(_ context.Context, sessionID string, n int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Message
	for i := len(s.messages) - 1; i >= 0 && len(out) < n; i-- {
		if s.messages[i].SessionID == sessionID {
			out = append(out, s.messages[i])
		}
	}
	return out, nil
}

// AllMessages returns the full transcript ordered oldest-first.
func (s *ChatStore) AllMessages(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Message
	for _, msg := range s.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// HasSession reports whether the session exists. Test helper.
func (s *ChatStore) HasSession(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok
}

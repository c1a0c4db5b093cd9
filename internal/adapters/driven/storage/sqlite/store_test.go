package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samchat/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "samchat.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestChatStore_EnsureSession_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	chats := store.ChatStore()
	ctx := context.Background()

	require.NoError(t, chats.EnsureSession(ctx, "sess-1"))
	require.NoError(t, chats.EnsureSession(ctx, "sess-1"))

	messages, err := chats.AllMessages(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChatStore_AppendAndReadBack(t *testing.T) {
	store := setupTestStore(t)
	chats := store.ChatStore()
	ctx := context.Background()

	require.NoError(t, chats.EnsureSession(ctx, "sess-1"))
	require.NoError(t, chats.AppendMessage(ctx, "sess-1", domain.RoleUser, "where is my order"))
	require.NoError(t, chats.AppendMessage(ctx, "sess-1", domain.RoleAssistant, "it ships tomorrow"))

	messages, err := chats.AllMessages(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "where is my order", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
	assert.False(t, messages[0].CreatedAt.IsZero())
}

func TestChatStore_RecentMessages_NewestFirstWithLimit(t *testing.T) {
	store := setupTestStore(t)
	chats := store.ChatStore()
	ctx := context.Background()

	require.NoError(t, chats.EnsureSession(ctx, "sess-1"))
	for _, content := range []string{"one", "two", "three", "four"} {
		require.NoError(t, chats.AppendMessage(ctx, "sess-1", domain.RoleUser, content))
	}

	recent, err := chats.RecentMessages(ctx, "sess-1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Same-timestamp inserts are ordered by the autoincrement id.
	assert.Equal(t, "four", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)
	assert.Equal(t, "two", recent[2].Content)
}

func TestChatStore_SessionsAreIsolated(t *testing.T) {
	store := setupTestStore(t)
	chats := store.ChatStore()
	ctx := context.Background()

	require.NoError(t, chats.EnsureSession(ctx, "sess-a"))
	require.NoError(t, chats.EnsureSession(ctx, "sess-b"))
	require.NoError(t, chats.AppendMessage(ctx, "sess-a", domain.RoleUser, "from a"))
	require.NoError(t, chats.AppendMessage(ctx, "sess-b", domain.RoleUser, "from b"))

	messages, err := chats.AllMessages(ctx, "sess-a")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "from a", messages[0].Content)
}

func TestChatStore_AllMessages_UnknownSession(t *testing.T) {
	store := setupTestStore(t)

	messages, err := store.ChatStore().AllMessages(context.Background(), "nope")

	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestCacheStore_GetMissReturnsNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.EmbeddingCache().Get(context.Background(), "never stored")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCacheStore_PutThenGet(t *testing.T) {
	store := setupTestStore(t)
	cache := store.EmbeddingCache()
	ctx := context.Background()

	vec := []float32{0.25, -0.5, 0.75}
	require.NoError(t, cache.Put(ctx, "shipping policy", vec))

	got, err := cache.Get(ctx, "shipping policy")
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func TestCacheStore_PutNeverOverwrites(t *testing.T) {
	store := setupTestStore(t)
	cache := store.EmbeddingCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "doc", []float32{1}))
	require.NoError(t, cache.Put(ctx, "doc", []float32{2}))

	got, err := cache.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, got)
}

func TestCacheStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.EmbeddingCache().Put(ctx, "persistent doc", []float32{0.9}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.EmbeddingCache().Get(ctx, "persistent doc")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.9}, got)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	embeddingapi "github.com/custodia-labs/samchat/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/samchat/internal/adapters/driven/knowledge/file"
	llmapi "github.com/custodia-labs/samchat/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/samchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/samchat/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/samchat/internal/config"
	"github.com/custodia-labs/samchat/internal/core/services"
	"github.com/custodia-labs/samchat/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the knowledge base and start the chat API server",
	Long: `Loads the knowledge base, embeds every document (warming the
persistent cache), then starts the HTTP API. The server only begins
accepting requests once the index is fully built.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Provider.APIKey == "" {
		return errors.New("no API key configured: set SAMCHAT_API_KEY or OPENROUTER_API_KEY")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	logger.Info("Database ready at %s", store.Path())

	chat, err := buildChatService(ctx, cfg, store)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(chat, httpapi.Options{
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.WindowDuration(),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildChatService constructs the full pipeline: provider adapters,
// cached embedder, knowledge index (built to completion here, before any
// request is served) and the core chat service.
func buildChatService(ctx context.Context, cfg *config.Config, store *sqlite.Store) (*services.ChatService, error) {
	embeddingSvc, err := embeddingapi.NewEmbeddingService(embeddingapi.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	completionSvc, err := llmapi.NewCompletionService(llmapi.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.ChatModel,
	})
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	embedder := services.NewCachedEmbedder(store.EmbeddingCache(), embeddingSvc)

	docs, err := file.NewLoader(cfg.Knowledge.Path).Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d knowledge documents from %s", len(docs), cfg.Knowledge.Path)

	index, err := services.BuildIndex(ctx, docs, embedder)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	return services.NewChatService(
		store.ChatStore(),
		completionSvc,
		embedder,
		services.NewIntentMatcher(services.DefaultIntents(), cfg.Retrieval.IntentThreshold),
		services.NewRanker(services.DefaultOverrideRules(), cfg.Retrieval.MinScore),
		index,
		cfg.Retrieval.HistoryLimit,
	), nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	embeddingapi "github.com/custodia-labs/samchat/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/samchat/internal/adapters/driven/knowledge/file"
	"github.com/custodia-labs/samchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/samchat/internal/config"
	"github.com/custodia-labs/samchat/internal/core/services"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the knowledge base and warm the persistent cache",
	Long: `Loads the knowledge base and embeds every document, persisting
each vector in the embedding cache. A subsequent serve start then builds
its index entirely from cache, without provider calls.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Provider.APIKey == "" {
		return errors.New("no API key configured: set SAMCHAT_API_KEY or OPENROUTER_API_KEY")
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	embeddingSvc, err := embeddingapi.NewEmbeddingService(embeddingapi.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}

	docs, err := file.NewLoader(cfg.Knowledge.Path).Load(cmd.Context())
	if err != nil {
		return err
	}

	embedder := services.NewCachedEmbedder(store.EmbeddingCache(), embeddingSvc)
	index, err := services.BuildIndex(cmd.Context(), docs, embedder)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	cmd.Printf("Indexed %d documents from %s\n", index.Len(), cfg.Knowledge.Path)
	return nil
}

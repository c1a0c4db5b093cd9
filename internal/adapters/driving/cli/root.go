// Package cli wires the application together and exposes it as a cobra
// command tree. It is the composition root: config, storage, provider
// adapters and core services are constructed here and handed to the
// driving adapters.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "samchat",
	Short: "Grounded support chat over a local knowledge base",
	Long: `samchat answers support questions from a small document collection.
Incoming messages are matched against conversational intents first,
then ranked against the knowledge base by embedding similarity; only
sufficiently relevant documents are handed to the completion model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command query-cli runs the query engine from the terminal, for trying
// queries against a dataset export without the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fplchat/query-engine/internal/config"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
	"github.com/fplchat/query-engine/pkg/engine"
)

var (
	version = "0.3.0"

	cfgFile    string
	datasetArg string
	outputJSON bool
	verbose    bool

	cfg    *config.Config
	logger *observability.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "query-cli",
		Short: "FPL query engine CLI",
		Long:  "Classify questions, extract entities and inspect the structured context the engine would hand to a generator.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if datasetArg != "" {
				cfg.Dataset.Path = datasetArg
			}

			level := cfg.Observability.LogLevel
			if !verbose {
				level = "error"
			}
			logger = observability.NewLogger(observability.LogConfig{
				Level:       level,
				Format:      "console",
				ServiceName: "query-cli",
			})
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&datasetArg, "dataset", "", "path to dataset JSON export")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print raw JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("query-cli %s\n", version)
		},
	}
}

// buildEngine loads the dataset and wires a local engine.
func buildEngine(ctx context.Context) (*engine.Engine, error) {
	spin := startSpinner("Loading dataset...")

	snapshots := snapshot.NewStore()
	provider := &snapshot.FileProvider{Path: cfg.Dataset.Path}
	if err := snapshots.Refresh(ctx, provider); err != nil {
		spin.Stop()
		return nil, fmt.Errorf("load dataset %s: %w", cfg.Dataset.Path, err)
	}
	spin.Stop()

	snap, _ := snapshots.Current()
	printInfo(fmt.Sprintf("Loaded %d players, %d teams, %d fixtures", len(snap.Players), len(snap.Teams), len(snap.Fixtures)))

	return engine.New(engine.Options{
		Snapshots:      snapshots,
		Logger:         logger,
		HistoryDepth:   cfg.Engine.HistoryDepth,
		TopN:           cfg.Engine.TopN,
		MaxTopN:        cfg.Engine.MaxTopN,
		FuzzyThreshold: cfg.Engine.FuzzyThreshold,
		CacheResults:   cfg.Engine.CacheResults,
		CacheTTL:       cfg.Cache.TTL,
	})
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"motoride/pkg/config"
	"motoride/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "motoride",
	Short: "MotoRide motorcycle storefront API",
	Long: `MotoRide serves motorcycle listings, the external catalog and the
per-visitor storefront sessions (browse, carousel, cart and payment).

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Init(cfg.Environment)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

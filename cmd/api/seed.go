package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"motoride/internal/infrastructure/database"
	"motoride/internal/usecase"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo store: one api key and its motorcycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadSeed(seedFile)
		if err != nil {
			return err
		}

		st, err := openStores(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer st.close()

		result, err := usecase.NewSeedUseCase(st.apiKeys, st.listings).Seed(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d motorcycles for key %s\n", result.Listings, result.APIKeyID)
		fmt.Fprintf(cmd.OutOrStdout(), "API key (shown once): %s\n", result.RawKey)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (default: built-in demo store)")
}

func loadSeed(path string) (*database.SeedData, error) {
	if path == "" {
		return database.DefaultSeed()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return database.ParseSeed(raw)
}

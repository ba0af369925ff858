package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/xiaot623/healthdesk/internal/config"
	"github.com/xiaot623/healthdesk/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "healthdesk",
	Short: "Health triage and service directory API",
	Long: `healthdesk serves rule-based symptom triage, a searchable directory of
health services with nearby search, and AI triage advice and chat backed by
one configured LLM provider.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty database with services",
	Long: `Insert services into the database when it holds none.

Without --file the built-in sample services are used. The file is YAML:

  services:
    - name: City Hospital
      location: 123 Main St
      contact: 555-1234
      latitude: 28.6139
      longitude: 77.2090`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "YAML seed file (defaults to SEED_FILE)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("getting file flag: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if file != "" {
		cfg.SeedFile = file
	}

	ctx := cmd.Context()
	db, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	n, err := seedStore(ctx, db, cfg.SeedFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d services\n", n)
	return nil
}

// seedStore loads the seed services from path, or the samples when path is
// empty, into an empty store.
func seedStore(ctx context.Context, db repository.Store, path string) (int, error) {
	services := repository.DefaultSeed()
	if path != "" {
		var err error
		services, err = repository.LoadSeedFile(path)
		if err != nil {
			return 0, err
		}
	}

	n, err := repository.Seed(ctx, db, services)
	if err != nil {
		return n, err
	}
	if n > 0 {
		log.Printf("Seeded %d services", n)
	}
	return n, nil
}


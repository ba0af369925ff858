package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiaot623/healthdesk/internal/adapter/llm"
	"github.com/xiaot623/healthdesk/internal/config"
	"github.com/xiaot623/healthdesk/internal/prompt"
	"github.com/xiaot623/healthdesk/internal/repository"
	"github.com/xiaot623/healthdesk/internal/service"
	server "github.com/xiaot623/healthdesk/internal/transport/http"
	"github.com/xiaot623/healthdesk/policy"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("Starting healthdesk...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", redactDSN(cfg))
	log.Printf("AI provider: %s", cfg.AIProvider)

	ctx := context.Background()

	// Initialize store
	db, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	if _, err := seedStore(ctx, db, cfg.SeedFile); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	// Initialize triage policy
	triage, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		return fmt.Errorf("failed to initialize policy engine: %w", err)
	}

	// Initialize LLM provider
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize llm provider: %w", err)
	}
	dispatcher := llm.NewDispatcher(provider)
	if !dispatcher.Configured() {
		log.Printf("WARN: AI provider not configured, /ai endpoints return a static reply")
	}

	// Initialize service
	svc := service.New(db, triage, prompt.NewBuilder(cfg.AIDefaultLanguage), dispatcher)

	e := server.NewServer(svc, cfg)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Println("Shutting down healthdesk...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("healthdesk stopped")
	return nil
}

// redactDSN hides PostgreSQL credentials in logs.
func redactDSN(cfg *config.Config) string {
	if cfg.IsPostgres() {
		return "postgres (redacted)"
	}
	return cfg.DatabaseURL
}

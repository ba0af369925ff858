package helpers

import (
	"context"
	"testing"

	"github.com/xiaot623/healthdesk/internal/repository"
)

func NewTestSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// NewSeededSQLiteStore returns an in-memory store holding the default sample
// services.
func NewSeededSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s := NewTestSQLiteStore(t)
	if _, err := repository.Seed(context.Background(), s, repository.DefaultSeed()); err != nil {
		t.Fatalf("failed to seed sqlite store: %v", err)
	}
	return s
}

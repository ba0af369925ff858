// Package repository defines the storage interface and implementations.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// Store defines the interface for service directory persistence.
// Getters return (nil, nil) when the record does not exist.
type Store interface {
	CreateService(ctx context.Context, service *domain.Service) error
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, offset, limit int) ([]domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) error
	DeleteService(ctx context.Context, id int64) (bool, error)
	SearchServices(ctx context.Context, query string, limit int) ([]domain.Service, error)
	CountServices(ctx context.Context) (int, error)

	// ListLocatedServices returns every service with a usable position, in
	// no particular order. Rows whose coordinates cannot be read are skipped.
	ListLocatedServices(ctx context.Context) ([]domain.Service, error)

	// Lifecycle
	Close() error
}

// Open opens the store matching the DSN: PostgreSQL for postgres:// URLs,
// SQLite otherwise.
func Open(ctx context.Context, dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresStore(ctx, dsn)
	}
	s, err := NewSQLiteStore(dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

func checkUpdated(rows int64, id int64) error {
	if rows == 0 {
		return fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

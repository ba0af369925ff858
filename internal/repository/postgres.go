package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to PostgreSQL and runs migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS services (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			contact TEXT NOT NULL
		)`,
		`ALTER TABLE services ADD COLUMN IF NOT EXISTS latitude DOUBLE PRECISION`,
		`ALTER TABLE services ADD COLUMN IF NOT EXISTS longitude DOUBLE PRECISION`,
		`CREATE INDEX IF NOT EXISTS idx_services_position ON services(latitude, longitude)`,
	}
	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// CreateService inserts a service and sets its ID.
func (s *PostgresStore) CreateService(ctx context.Context, service *domain.Service) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO services (name, location, contact, latitude, longitude) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		service.Name, service.Location, service.Contact, service.Latitude, service.Longitude,
	).Scan(&service.ID)
}

// GetService retrieves a service by ID.
func (s *PostgresStore) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	service, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[domain.Service])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ListServices lists services ordered by ID.
func (s *PostgresStore) ListServices(ctx context.Context, offset, limit int) ([]domain.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Service])
}

// UpdateService overwrites every column of an existing service.
func (s *PostgresStore) UpdateService(ctx context.Context, service *domain.Service) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE services SET name = $1, location = $2, contact = $3, latitude = $4, longitude = $5 WHERE id = $6`,
		service.Name, service.Location, service.Contact, service.Latitude, service.Longitude, service.ID)
	if err != nil {
		return err
	}
	return checkUpdated(tag.RowsAffected(), service.ID)
}

// DeleteService deletes a service. It reports false when nothing was deleted.
func (s *PostgresStore) DeleteService(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SearchServices matches query as a case-insensitive substring of name,
// location or contact.
func (s *PostgresStore) SearchServices(ctx context.Context, query string, limit int) ([]domain.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM services
		WHERE name ILIKE $1 OR location ILIKE $1 OR contact ILIKE $1
		ORDER BY id LIMIT $2`, likePattern(query), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Service])
}

// CountServices returns the number of services.
func (s *PostgresStore) CountServices(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}

// ListLocatedServices returns the services with both coordinates set.
// DOUBLE PRECISION columns cannot hold text, but may hold NaN or Infinity;
// those rows are dropped later by the proximity filter.
func (s *PostgresStore) ListLocatedServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE latitude IS NOT NULL AND longitude IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Service])
}

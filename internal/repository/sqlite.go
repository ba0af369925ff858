package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			contact TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	// Geolocation columns were added after the first release.
	if err := s.ensureColumn("services", "latitude", "ALTER TABLE services ADD COLUMN latitude REAL"); err != nil {
		return err
	}
	if err := s.ensureColumn("services", "longitude", "ALTER TABLE services ADD COLUMN longitude REAL"); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_services_position ON services(latitude, longitude)`); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) ensureColumn(tableName, columnName, ddl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == columnName {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.db.Exec(ddl)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const serviceColumns = `id, name, location, contact, latitude, longitude`

// CreateService inserts a service and sets its ID.
func (s *SQLiteStore) CreateService(ctx context.Context, service *domain.Service) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO services (name, location, contact, latitude, longitude) VALUES (?, ?, ?, ?, ?)`,
		service.Name, service.Location, service.Contact, nullFloat(service.Latitude), nullFloat(service.Longitude))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	service.ID = id
	return nil
}

// GetService retrieves a service by ID.
func (s *SQLiteStore) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	service, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if errors.Is(err, errCorruptPosition) {
		log.Printf("WARN: %v", err)
		return service, nil
	}
	if err != nil {
		return nil, err
	}
	return service, nil
}

// ListServices lists services ordered by ID.
func (s *SQLiteStore) ListServices(ctx context.Context, offset, limit int) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectServices(rows, false)
}

// UpdateService overwrites every column of an existing service.
func (s *SQLiteStore) UpdateService(ctx context.Context, service *domain.Service) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE services SET name = ?, location = ?, contact = ?, latitude = ?, longitude = ? WHERE id = ?`,
		service.Name, service.Location, service.Contact, nullFloat(service.Latitude), nullFloat(service.Longitude), service.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	return checkUpdated(n, service.ID)
}

// DeleteService deletes a service. It reports false when nothing was deleted.
func (s *SQLiteStore) DeleteService(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SearchServices matches query as a case-insensitive substring of name,
// location or contact.
func (s *SQLiteStore) SearchServices(ctx context.Context, query string, limit int) ([]domain.Service, error) {
	like := likePattern(query)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services
		WHERE name LIKE ? ESCAPE '\' OR location LIKE ? ESCAPE '\' OR contact LIKE ? ESCAPE '\'
		ORDER BY id LIMIT ?`, like, like, like, limit)
	if err != nil {
		return nil, err
	}
	return collectServices(rows, false)
}

// CountServices returns the number of services.
func (s *SQLiteStore) CountServices(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}

// ListLocatedServices returns the services with both coordinates set.
func (s *SQLiteStore) ListLocatedServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE latitude IS NOT NULL AND longitude IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	return collectServices(rows, true)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

var errCorruptPosition = errors.New("corrupt position")

// scanService reads one row. A coordinate that cannot be parsed leaves the
// position empty and is reported with errCorruptPosition alongside the row.
func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var lat, lon interface{}
	if err := row.Scan(&service.ID, &service.Name, &service.Location, &service.Contact, &lat, &lon); err != nil {
		return nil, err
	}

	latitude, latErr := parseCoordinate(lat)
	longitude, lonErr := parseCoordinate(lon)
	if latErr != nil || lonErr != nil || (latitude == nil) != (longitude == nil) {
		return &service, fmt.Errorf("service %d: %w", service.ID, errCorruptPosition)
	}
	service.Latitude = latitude
	service.Longitude = longitude
	return &service, nil
}

func collectServices(rows *sql.Rows, locatedOnly bool) ([]domain.Service, error) {
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if errors.Is(err, errCorruptPosition) {
			log.Printf("WARN: %v", err)
			if locatedOnly {
				continue
			}
		} else if err != nil {
			return nil, err
		}
		services = append(services, *service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

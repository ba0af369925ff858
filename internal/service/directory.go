package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiaot623/healthdesk/internal/domain"
	"github.com/xiaot623/healthdesk/internal/geo"
)

// Query limits of the directory operations.
const (
	DefaultListLimit   = 100
	MaxListLimit       = 1000
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	MaxSearchQuery     = 100
	DefaultRadiusKm    = 10.0
	MaxRadiusKm        = 2000.0
	DefaultNearbyLimit = 20
	MaxNearbyLimit     = 100
)

func (s *Service) ListServices(ctx context.Context, skip, limit int) ([]domain.Service, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0", domain.ErrInvalidInput)
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxListLimit)
	}

	services, err := s.store.ListServices(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// GetService returns domain.ErrNotFound when the service does not exist.
func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}
	return service, nil
}

func (s *Service) CreateService(ctx context.Context, service domain.Service) (*domain.Service, error) {
	service.ID = 0
	if err := service.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateService(ctx, &service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &service, nil
}

// UpdateService applies a partial update and validates the result.
func (s *Service) UpdateService(ctx context.Context, id int64, patch domain.ServicePatch) (*domain.Service, error) {
	current, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateService(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return &updated, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteService(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if !deleted {
		return fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SearchServices matches q case-insensitively against name, location and
// contact.
func (s *Service) SearchServices(ctx context.Context, q string, limit int) ([]domain.Service, error) {
	n := utf8.RuneCountInString(q)
	if strings.TrimSpace(q) == "" || n > MaxSearchQuery {
		return nil, fmt.Errorf("%w: q must be 1 to %d characters", domain.ErrInvalidInput, MaxSearchQuery)
	}
	if limit < 1 || limit > MaxSearchLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxSearchLimit)
	}

	services, err := s.store.SearchServices(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	return services, nil
}

// NearbyServices returns the services within radiusKm of (lat, lon), nearest
// first.
func (s *Service) NearbyServices(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]domain.Service, error) {
	origin := geo.Point{Lat: lat, Lon: lon}
	if !origin.Valid() {
		return nil, fmt.Errorf("%w: lat must be in [-90, 90] and lon in [-180, 180]", domain.ErrInvalidInput)
	}
	if !(radiusKm > 0 && radiusKm <= MaxRadiusKm) {
		return nil, fmt.Errorf("%w: radius_km must be in (0, %g]", domain.ErrInvalidInput, MaxRadiusKm)
	}
	if limit < 1 || limit > MaxNearbyLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxNearbyLimit)
	}

	located, err := s.store.ListLocatedServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list located services: %w", err)
	}
	return geo.FindNearby(located, origin, radiusKm, limit), nil
}

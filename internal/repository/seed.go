package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// SeedFile is the YAML layout accepted by LoadSeedFile.
type SeedFile struct {
	Services []domain.Service `yaml:"services"`
}

// DefaultSeed returns the sample services loaded into an empty database.
func DefaultSeed() []domain.Service {
	return []domain.Service{
		{Name: "City Hospital", Location: "123 Main St", Contact: "555-1234", Latitude: float(28.6139), Longitude: float(77.2090)},
		{Name: "Urgent Care Clinic", Location: "456 Elm St", Contact: "555-5678", Latitude: float(28.5355), Longitude: float(77.3910)},
		{Name: "Emergency Room", Location: "789 Oak Ave", Contact: "911", Latitude: float(28.4595), Longitude: float(77.0266)},
		{Name: "Family Clinic", Location: "321 Pine St", Contact: "555-9999", Latitude: float(28.7041), Longitude: float(77.1025)},
	}
}

// LoadSeedFile reads and validates services from a YAML file.
func LoadSeedFile(path string) ([]domain.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing seed file: %w", err)
	}

	for i := range file.Services {
		if err := file.Services[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed service #%d: %w", i+1, err)
		}
	}
	return file.Services, nil
}

// Seed inserts services when the store is empty. It returns the number of
// inserted services.
func Seed(ctx context.Context, store Store, services []domain.Service) (int, error) {
	n, err := store.CountServices(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i := range services {
		service := services[i]
		if err := store.CreateService(ctx, &service); err != nil {
			return i, fmt.Errorf("failed to seed service %q: %w", service.Name, err)
		}
	}
	return len(services), nil
}

func float(f float64) *float64 {
	return &f
}

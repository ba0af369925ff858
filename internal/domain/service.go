package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Service is an entry of the health service directory (clinic, hospital, ...).
type Service struct {
	ID        int64    `json:"id" yaml:"-"`
	Name      string   `json:"name" yaml:"name"`
	Location  string   `json:"location" yaml:"location"`
	Contact   string   `json:"contact" yaml:"contact"`
	Latitude  *float64 `json:"latitude" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude" yaml:"longitude,omitempty"`
}

// Position returns the service coordinates. ok is false when the service has
// no position.
func (s Service) Position() (lat, lon float64, ok bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return 0, 0, false
	}
	return *s.Latitude, *s.Longitude, true
}

// Validate checks field lengths and coordinate ranges.
func (s *Service) Validate() error {
	if err := checkLength("name", s.Name, 100); err != nil {
		return err
	}
	if err := checkLength("location", s.Location, 200); err != nil {
		return err
	}
	if err := checkLength("contact", s.Contact, 50); err != nil {
		return err
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidInput)
	}
	if s.Latitude != nil && !ValidLatitude(*s.Latitude) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
	}
	if s.Longitude != nil && !ValidLongitude(*s.Longitude) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
	}
	return nil
}

// ServicePatch holds the fields of a partial service update. Nil fields are
// left unchanged. A coordinate sent as an explicit JSON null is cleared.
type ServicePatch struct {
	Name      *string  `json:"name,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Contact   *string  `json:"contact,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	ClearLatitude  bool `json:"-"`
	ClearLongitude bool `json:"-"`
}

// UnmarshalJSON decodes the patch and records coordinates sent as null.
func (p *ServicePatch) UnmarshalJSON(data []byte) error {
	type plain ServicePatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	decoded.ClearLatitude = isNull(fields, "latitude")
	decoded.ClearLongitude = isNull(fields, "longitude")
	*p = ServicePatch(decoded)
	return nil
}

func isNull(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Apply returns a copy of s with the patch applied.
func (p ServicePatch) Apply(s Service) Service {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Contact != nil {
		s.Contact = *p.Contact
	}
	switch {
	case p.ClearLatitude:
		s.Latitude = nil
	case p.Latitude != nil:
		lat := *p.Latitude
		s.Latitude = &lat
	}
	switch {
	case p.ClearLongitude:
		s.Longitude = nil
	case p.Longitude != nil:
		lon := *p.Longitude
		s.Longitude = &lon
	}
	return s
}

// ValidLatitude reports whether lat is in [-90, 90]. NaN is rejected.
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is in [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

func checkLength(field, value string, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

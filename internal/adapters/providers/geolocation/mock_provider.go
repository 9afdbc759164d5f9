package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
)

type knownPlace struct {
	name   string
	coords providers.Coordinates
}

// Neighbourhoods come before their city so "Vila Mariana, SP" does not
// match São Paulo first.
var mockPlaces = []knownPlace{
	{"vila mariana", providers.Coordinates{Latitude: -23.5891, Longitude: -46.6342}},
	{"pinheiros", providers.Coordinates{Latitude: -23.5673, Longitude: -46.6920}},
	{"moema", providers.Coordinates{Latitude: -23.6010, Longitude: -46.6626}},
	{"campinas", providers.Coordinates{Latitude: -22.9099, Longitude: -47.0626}},
	{"rio de janeiro", providers.Coordinates{Latitude: -22.9068, Longitude: -43.1729}},
	{"belo horizonte", providers.Coordinates{Latitude: -19.9167, Longitude: -43.9345}},
	{"curitiba", providers.Coordinates{Latitude: -25.4284, Longitude: -49.2733}},
	{"são paulo", providers.Coordinates{Latitude: -23.5505, Longitude: -46.6333}},
}

// MockGeolocationProvider resolves a fixed set of Brazilian locations. Any
// other address is a miss.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode matches the first known place name contained in address
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	lowered := strings.ToLower(address)
	for _, place := range mockPlaces {
		if strings.Contains(lowered, place.name) {
			coords := place.coords
			return &coords, nil
		}
	}
	return nil, fmt.Errorf("no results for address %q", address)
}

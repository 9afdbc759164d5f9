package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
)

const (
	nominatimSearchURL    = "https://nominatim.openstreetmap.org/search"
	defaultNominatimAgent = "neuromap_brasil"
)

// NominatimGeolocationProvider resolves addresses with the OpenStreetMap
// Nominatim search API. Nominatim requires an identifying User-Agent.
type NominatimGeolocationProvider struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

// NewNominatimGeolocationProvider creates a Nominatim provider.
func NewNominatimGeolocationProvider(userAgent string) providers.GeolocationProvider {
	return NewNominatimGeolocationProviderWithOptions(userAgent, nominatimSearchURL, nil)
}

// NewNominatimGeolocationProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimGeolocationProviderWithOptions(userAgent, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultNominatimAgent
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimSearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimGeolocationProvider{
		userAgent:  userAgent,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Geocode returns the coordinates of the best Nominatim match.
func (n *NominatimGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("countrycodes", "br")

	reqURL := fmt.Sprintf("%s?%s", n.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nominatim request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for address")
	}

	// Nominatim encodes coordinates as strings.
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &providers.Coordinates{Latitude: lat, Longitude: lon}, nil
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

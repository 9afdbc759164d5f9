package handlers

import (
	"net/http"
	"strings"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	coords, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("address", address).Msg("geocode failed")
		respondWithError(w, http.StatusNotFound, "address could not be geocoded")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"lat":     coords.Latitude,
		"lng":     coords.Longitude,
	})
}

package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
)

const defaultGeocodeCacheTTL = 30 * 24 * time.Hour

// CachedGeolocationProvider memoises address lookups of another provider.
// Only successful lookups are stored; cache failures fall through to the
// wrapped provider.
type CachedGeolocationProvider struct {
	next    providers.GeolocationProvider
	cache   providers.CacheProvider
	metrics *observability.Metrics
	ttl     time.Duration
}

// NewCachedGeolocationProvider wraps next with cache.
func NewCachedGeolocationProvider(next providers.GeolocationProvider, cache providers.CacheProvider, metrics *observability.Metrics) providers.GeolocationProvider {
	return &CachedGeolocationProvider{
		next:    next,
		cache:   cache,
		metrics: metrics,
		ttl:     defaultGeocodeCacheTTL,
	}
}

// Geocode returns the cached coordinates for address or asks the wrapped provider.
func (c *CachedGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(strings.TrimSpace(address)))

	cached, err := c.cache.Get(ctx, cacheKey)
	if err == nil && len(cached) > 0 {
		var coords providers.Coordinates
		if err := json.Unmarshal(cached, &coords); err == nil {
			observability.RecordCacheHit(ctx, c.metrics, "geocode")
			return &coords, nil
		}
	} else if err != nil && !errors.Is(err, providers.ErrCacheMiss) {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("geocode cache read failed")
	}
	observability.RecordCacheMiss(ctx, c.metrics, "geocode")

	coords, err := c.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(coords); err == nil {
		if err := c.cache.Set(ctx, cacheKey, payload, c.ttl); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return coords, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

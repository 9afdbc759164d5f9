// Package bootstrap builds the providers both binaries share from config.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/neuromap-brasil/neuromap/internal/adapters/cache"
	"github.com/neuromap-brasil/neuromap/internal/adapters/providers/geolocation"
	"github.com/neuromap-brasil/neuromap/internal/domain/providers"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/gemini"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/openai"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/redis"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
)

const geocodeCachePrefix = "neuromap:"

// NewGeolocationProvider returns the configured geocoder, wrapped with the
// Redis cache when it is enabled and reachable. The returned func releases
// the Redis connection.
func NewGeolocationProvider(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (providers.GeolocationProvider, func()) {
	logger := observability.GetLogger()

	var provider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			logger.Warn().Msg("GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			provider = geolocation.NewMockGeolocationProvider()
		} else {
			provider = geolocation.NewGoogleGeolocationProviderWithOptions(cfg.Geolocation.APIKey, cfg.Geolocation.BaseURL, nil)
		}
	case "mock":
		provider = geolocation.NewMockGeolocationProvider()
	default:
		provider = geolocation.NewNominatimGeolocationProviderWithOptions(cfg.Geolocation.UserAgent, cfg.Geolocation.BaseURL, nil)
	}

	if !cfg.Redis.Enabled {
		return provider, func() {}
	}

	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("geocode cache disabled: redis unavailable")
		return provider, func() {}
	}
	logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("geocode cache enabled")

	cached := geolocation.NewCachedGeolocationProvider(provider, cache.NewRedisAdapter(redisClient, geocodeCachePrefix), metrics)
	return cached, func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

// NewLanguageModelProvider returns the configured model client.
func NewLanguageModelProvider(cfg *config.Config, metrics *observability.Metrics) (providers.LanguageModelProvider, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return gemini.NewClient(&cfg.LLM, metrics), nil
	case "openai":
		return openai.NewClient(&cfg.LLM, metrics), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

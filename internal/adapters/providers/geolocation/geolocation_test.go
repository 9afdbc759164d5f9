package geolocation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromap-brasil/neuromap/internal/adapters/cache"
	"github.com/neuromap-brasil/neuromap/internal/adapters/providers/geolocation"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/clients/redis"
)

const googleOK = `{
  "status": "OK",
  "results": [{
    "formatted_address": "Vila Mariana, São Paulo - SP, Brasil",
    "geometry": { "location": { "lat": -23.5891, "lng": -46.6342 } }
  }]
}`

func TestGoogleProvider_Geocode(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("address")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(googleOK))
	}))
	defer server.Close()

	provider := geolocation.NewGoogleGeolocationProviderWithOptions("test-key", server.URL, server.Client())

	coords, err := provider.Geocode(context.Background(), "Vila Mariana, SP, Brasil")
	require.NoError(t, err)
	assert.Equal(t, "Vila Mariana, SP, Brasil", gotQuery)
	assert.Equal(t, -23.5891, coords.Latitude)
	assert.Equal(t, -46.6342, coords.Longitude)
}

func TestGoogleProvider_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	provider := geolocation.NewGoogleGeolocationProviderWithOptions("test-key", server.URL, server.Client())

	_, err := provider.Geocode(context.Background(), "Lugar Nenhum")
	assert.Error(t, err)
}

func TestGoogleProvider_RequiresKey(t *testing.T) {
	provider := geolocation.NewGoogleGeolocationProvider("")

	_, err := provider.Geocode(context.Background(), "Moema, SP")
	assert.ErrorContains(t, err, "api key")
}

func TestNominatimProvider_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "neuromap_test", r.Header.Get("User-Agent"))
		assert.Equal(t, "Moema, SP, Brasil", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"display_name":"Moema, São Paulo","lat":"-23.6010","lon":"-46.6626"}]`))
	}))
	defer server.Close()

	provider := geolocation.NewNominatimGeolocationProviderWithOptions("neuromap_test", server.URL, server.Client())

	coords, err := provider.Geocode(context.Background(), "Moema, SP, Brasil")
	require.NoError(t, err)
	assert.Equal(t, -23.6010, coords.Latitude)
	assert.Equal(t, -46.6626, coords.Longitude)
}

func TestNominatimProvider_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty result": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		"bad latitude": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"-46.6"}]`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			provider := geolocation.NewNominatimGeolocationProviderWithOptions("", server.URL, server.Client())
			_, err := provider.Geocode(context.Background(), "Vila Mariana, SP, Brasil")
			assert.Error(t, err)
		})
	}
}

func TestMockProvider_Geocode(t *testing.T) {
	provider := geolocation.NewMockGeolocationProvider()

	coords, err := provider.Geocode(context.Background(), "Vila Mariana, SP, Brasil")
	require.NoError(t, err)
	assert.Equal(t, -23.5891, coords.Latitude)

	_, err = provider.Geocode(context.Background(), "Atlantis, XX, Brasil")
	assert.Error(t, err)
}

func TestCachedProvider_OnlyCallsUpstreamOnce(t *testing.T) {
	var geocodeCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&geocodeCalls, 1)
		_, _ = w.Write([]byte(googleOK))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cacheProvider := cache.NewRedisAdapter(redis.NewClientFromRedis(rdb), "test:")
	upstream := geolocation.NewGoogleGeolocationProviderWithOptions("test-key", server.URL, server.Client())
	provider := geolocation.NewCachedGeolocationProvider(upstream, cacheProvider, nil)

	ctx := context.Background()
	first, err := provider.Geocode(ctx, "Vila Mariana, SP, Brasil")
	require.NoError(t, err)

	second, err := provider.Geocode(ctx, "  vila mariana, sp, brasil ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&geocodeCalls))
}

func TestCachedProvider_DoesNotCacheMisses(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	provider := geolocation.NewCachedGeolocationProvider(
		geolocation.NewNominatimGeolocationProviderWithOptions("", server.URL, server.Client()),
		cache.NewRedisAdapter(redis.NewClientFromRedis(rdb), "test:"),
		nil,
	)

	for i := 0; i < 2; i++ {
		_, err := provider.Geocode(context.Background(), "Lugar Nenhum")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Empty(t, mr.Keys())
}

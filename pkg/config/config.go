package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	App         AppConfig
	Geolocation GeolocationConfig
	LLM         LLMConfig
	Redis       RedisConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration. SearchRateLimit is the number of
// searches one client IP may run per minute; zero disables the limit.
type ServerConfig struct {
	Host            string
	Port            int
	AllowedOrigins  []string
	SearchRateLimit int
}

// AppConfig holds runtime environment and presentation settings
type AppConfig struct {
	Env    string
	Locale string
}

// GeolocationConfig holds geolocation provider configuration
type GeolocationConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	UserAgent string
}

// LLMConfig holds language model provider configuration.
// APIKey is only a fallback for the CLI; the web form always asks the user.
type LLMConfig struct {
	Provider       string
	Model          string
	APIKey         string
	BaseURL        string
	RateLimitRPM   int
	RateLimitBurst int
}

// RedisConfig holds Redis configuration. Enabled turns on the geocode cache.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables, reading an optional
// .env file first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			SearchRateLimit: getEnvAsInt("SEARCH_RATE_LIMIT_PER_MINUTE", 20),
		},
		App: AppConfig{
			Env:    getEnv("APP_ENV", "development"),
			Locale: getEnv("APP_LOCALE", "pt-BR"),
		},
		Geolocation: GeolocationConfig{
			Provider:  getEnv("GEOLOCATION_PROVIDER", "nominatim"),
			APIKey:    getEnv("GEOLOCATION_API_KEY", ""),
			BaseURL:   getEnv("GEOLOCATION_BASE_URL", ""),
			UserAgent: getEnv("GEOLOCATION_USER_AGENT", "neuromap_brasil"),
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "gemini"),
			Model:          getEnv("LLM_MODEL", ""),
			APIKey:         getEnv("LLM_API_KEY", ""),
			BaseURL:        getEnv("LLM_BASE_URL", ""),
			RateLimitRPM:   getEnvAsInt("LLM_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("LLM_RATE_LIMIT_BURST", 5),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "neuromap-brasil"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects provider names no adapter exists for
func (c *Config) Validate() error {
	switch c.Geolocation.Provider {
	case "nominatim", "google", "mock":
	default:
		return fmt.Errorf("unknown geolocation provider %q", c.Geolocation.Provider)
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	switch c.App.Locale {
	case "pt-BR", "en":
	default:
		return fmt.Errorf("unsupported locale %q", c.App.Locale)
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerAddr returns the listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	RateLimit          string

	// Providers
	FXAPIURL         string
	FinnhubAPIURL    string
	FinnhubAPIKey    string
	CoinGeckoAPIURL  string
	MetalsAPIURL     string
	ProviderTimeout  time.Duration
	ProviderRetryMax int
	OllamaURL        string
	OllamaModel      string

	// Rates and jobs
	DefaultBaseCurrency    string
	RateMaxStaleDays       int
	RateRefreshSchedule    string
	HoldingRefreshSchedule string
	JobTimeout             time.Duration

	// Database maintenance; the blocking operations are off unless enabled.
	MaintenanceSchedule   string
	MaintenanceFullVacuum bool
	MaintenanceReindex    bool
	MaintenanceTimeout    time.Duration

	// Observability
	SentryDSN         string
	SentryEnvironment string
	PosthogAPIKey     string
	PosthogEndpoint   string
}

func setDefaults() {
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", insecureJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "pfm-backend")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("FX_API_URL", "https://api.fxratesapi.com/latest")
	viper.SetDefault("FINNHUB_API_URL", "https://finnhub.io/api/v1/quote")
	viper.SetDefault("FINNHUB_API_KEY", "")
	viper.SetDefault("COINGECKO_API_URL", "https://api.coingecko.com/api/v3/simple/price")
	viper.SetDefault("METALS_API_URL", "https://api.metals.live/v1/spot")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("PROVIDER_RETRY_MAX", 2)
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3")
	viper.SetDefault("DEFAULT_BASE_CURRENCY", "USD")
	viper.SetDefault("RATE_MAX_STALE_DAYS", 7)
	viper.SetDefault("RATE_REFRESH_SCHEDULE", "0 */6 * * *")
	viper.SetDefault("HOLDING_REFRESH_SCHEDULE", "0 */6 * * *")
	viper.SetDefault("JOB_TIMEOUT", "5m")
	viper.SetDefault("DB_MAINTENANCE_SCHEDULE", "CRON_TZ=UTC 0 2 1 * *")
	viper.SetDefault("DB_MAINTENANCE_FULL_VACUUM", false)
	viper.SetDefault("DB_MAINTENANCE_REINDEX", false)
	viper.SetDefault("DB_MAINTENANCE_TIMEOUT", "2h")
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("SENTRY_ENVIRONMENT", "development")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

// duration parses key, falling back to def with a warning on bad input.
func duration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return def
	}
	return d
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	setDefaults()
	// Environment variables override .env values, which override defaults.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		JWTExpiryDuration:      duration("JWT_EXPIRY_DURATION", 7*24*time.Hour),
		JWTIssuer:              viper.GetString("JWT_ISSUER"),
		RateLimit:              viper.GetString("RATE_LIMIT"),
		FXAPIURL:               viper.GetString("FX_API_URL"),
		FinnhubAPIURL:          viper.GetString("FINNHUB_API_URL"),
		FinnhubAPIKey:          viper.GetString("FINNHUB_API_KEY"),
		CoinGeckoAPIURL:        viper.GetString("COINGECKO_API_URL"),
		MetalsAPIURL:           viper.GetString("METALS_API_URL"),
		ProviderTimeout:        duration("PROVIDER_TIMEOUT", 10*time.Second),
		ProviderRetryMax:       viper.GetInt("PROVIDER_RETRY_MAX"),
		OllamaURL:              viper.GetString("OLLAMA_URL"),
		OllamaModel:            viper.GetString("OLLAMA_MODEL"),
		DefaultBaseCurrency:    strings.ToUpper(viper.GetString("DEFAULT_BASE_CURRENCY")),
		RateMaxStaleDays:       viper.GetInt("RATE_MAX_STALE_DAYS"),
		RateRefreshSchedule:    viper.GetString("RATE_REFRESH_SCHEDULE"),
		HoldingRefreshSchedule: viper.GetString("HOLDING_REFRESH_SCHEDULE"),
		JobTimeout:             duration("JOB_TIMEOUT", 5*time.Minute),
		MaintenanceSchedule:    viper.GetString("DB_MAINTENANCE_SCHEDULE"),
		MaintenanceFullVacuum:  viper.GetBool("DB_MAINTENANCE_FULL_VACUUM"),
		MaintenanceReindex:     viper.GetBool("DB_MAINTENANCE_REINDEX"),
		MaintenanceTimeout:     duration("DB_MAINTENANCE_TIMEOUT", 2*time.Hour),
		SentryDSN:              viper.GetString("SENTRY_DSN"),
		SentryEnvironment:      viper.GetString("SENTRY_ENVIRONMENT"),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:        viper.GetString("POSTHOG_ENDPOINT"),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == insecureJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RateMaxStaleDays <= 0 {
		log.Printf("Warning: RATE_MAX_STALE_DAYS must be positive. Defaulting to 7.\n")
		cfg.RateMaxStaleDays = 7
	}
	if cfg.ProviderRetryMax < 0 {
		cfg.ProviderRetryMax = 0
	}

	return cfg, nil
}

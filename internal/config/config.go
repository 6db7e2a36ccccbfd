package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Config carries all service configuration, loaded from the environment.
type Config struct {
	Environment string
	HTTPAddr    string
	DatabaseDSN string

	// CartBaseURL points at the external cart collaborator
	// (expects /cart/add.js and /cart.js under it).
	CartBaseURL string

	// SubscriptionRate and PromoRate are the multipliers applied to the base
	// price per item. Defaults reproduce the 25% subscription + 20% sale
	// discount pairing.
	SubscriptionRate decimal.Decimal
	PromoRate        decimal.Decimal

	// CurrencyLabel is display-only; the service does no currency conversion.
	CurrencyLabel string

	// SessionTTL bounds how long an abandoned selection session is kept.
	SessionTTL time.Duration
	// CatalogTTL bounds how long a loaded catalog snapshot is reused.
	CatalogTTL time.Duration

	TracingEnabled          bool
	TracingExporterEndpoint string
	TracingExporterProtocol string
	TracingSamplingRatio    float64

	SeedDemoCatalog bool
}

// Load reads configuration from the environment with development defaults.
func Load() Config {
	return Config{
		Environment:      getEnv("STOREFRONT_ENV", "development"),
		HTTPAddr:         getEnv("STOREFRONT_HTTP_ADDR", ":8080"),
		DatabaseDSN:      getEnv("STOREFRONT_DATABASE_DSN", "file:storefront.db?cache=shared"),
		CartBaseURL:      getEnv("STOREFRONT_CART_BASE_URL", "http://localhost:9292"),
		SubscriptionRate: getEnvRate("STOREFRONT_SUBSCRIPTION_RATE", "0.75"),
		PromoRate:        getEnvRate("STOREFRONT_PROMO_RATE", "0.8"),
		CurrencyLabel:    getEnv("STOREFRONT_CURRENCY_LABEL", "Rs."),
		SessionTTL:       getEnvDuration("STOREFRONT_SESSION_TTL", 30*time.Minute),
		CatalogTTL:       getEnvDuration("STOREFRONT_CATALOG_TTL", 5*time.Minute),

		TracingEnabled:          getEnvBool("STOREFRONT_TRACING_ENABLED", false),
		TracingExporterEndpoint: getEnv("STOREFRONT_TRACING_ENDPOINT", ""),
		TracingExporterProtocol: getEnv("STOREFRONT_TRACING_PROTOCOL", "grpc"),
		TracingSamplingRatio:    getEnvFloat("STOREFRONT_TRACING_SAMPLING_RATIO", 0.1),

		SeedDemoCatalog: getEnvBool("STOREFRONT_SEED_DEMO_CATALOG", true),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// getEnvRate parses a discount multiplier and rejects values outside (0, 1].
func getEnvRate(key, fallback string) decimal.Decimal {
	def := decimal.RequireFromString(fallback)
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return def
	}
	if parsed.LessThanOrEqual(decimal.Zero) || parsed.GreaterThan(decimal.NewFromInt(1)) {
		return def
	}
	return parsed
}

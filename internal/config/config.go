package config

import (
	"fmt"

	pkgconfig "github.com/cgdmohamed/drznmobile-sub000/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Redis (cart and shipping-method snapshots)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Cart snapshot TTL in hours (default: 30 days, matching abandoned-cart
	// retention on the store backend)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"720"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// WooCommerce-shaped backend
	CatalogBaseURL        string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8081/wp-json/wc/v3"`
	CatalogConsumerKey    string `env:"CATALOG_CONSUMER_KEY" envDefault:""`
	CatalogConsumerSecret string `env:"CATALOG_CONSUMER_SECRET" envDefault:""`

	// Feed guarantee: minimum products returned by the home listing
	MinFeedProducts int `env:"MIN_FEED_PRODUCTS" envDefault:"5"`

	// Auth
	JWTSecret string `env:"JWT_SECRET" envDefault:""`

	// Pprof access (CIDR allowlist; empty disables the endpoints)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"OTEL_EXPORTER_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("invalid cart TTL: %d", c.CartTTL)
	}
	if c.MinFeedProducts < 1 {
		return fmt.Errorf("invalid minimum feed products: %d", c.MinFeedProducts)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %f", c.TracingSampleRate)
	}
	return nil
}

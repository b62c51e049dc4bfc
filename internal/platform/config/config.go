package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Price sources.
const (
	PriceSimulated = "simulated"
	PriceStatic    = "static"
	PriceAlpaca    = "alpaca"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string
	MigrationsPath string
	LogLevel       string
	JWTSecret      string
	JWTIssuer      string

	// Trading
	FeeMinMinor int64
	FeeRateBps  int64

	// One-time passcodes
	OTPLength      int
	OTPTTL         time.Duration
	OTPMaxAttempts int
	OTPHashCost    int

	// Price oracle
	PriceSource     string
	PriceSeedFile   string
	PriceJitterBps  int64
	AlpacaAPIKey    string
	AlpacaAPISecret string
	AlpacaDataURL   string

	// Audit sink
	PosthogAPIKey   string
	PosthogEndpoint string
	AuditBufferSize int

	RateLimit          string // ulule limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", StorePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "simbank")
	v.SetDefault("FEE_MIN_MINOR", 100)
	v.SetDefault("FEE_RATE_BPS", 10)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_TTL", "10m")
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("OTP_HASH_COST", 10)
	v.SetDefault("PRICE_SOURCE", PriceSimulated)
	v.SetDefault("PRICE_SEED_FILE", "")
	v.SetDefault("PRICE_JITTER_BPS", 50)
	v.SetDefault("ALPACA_API_KEY", "")
	v.SetDefault("ALPACA_API_SECRET", "")
	v.SetDefault("ALPACA_DATA_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("AUDIT_BUFFER_SIZE", 256)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:     strings.ToLower(v.GetString("STORE_DRIVER")),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		FeeMinMinor:     v.GetInt64("FEE_MIN_MINOR"),
		FeeRateBps:      v.GetInt64("FEE_RATE_BPS"),
		OTPLength:       v.GetInt("OTP_LENGTH"),
		OTPMaxAttempts:  v.GetInt("OTP_MAX_ATTEMPTS"),
		OTPHashCost:     v.GetInt("OTP_HASH_COST"),
		PriceSource:     strings.ToLower(v.GetString("PRICE_SOURCE")),
		PriceSeedFile:   v.GetString("PRICE_SEED_FILE"),
		PriceJitterBps:  v.GetInt64("PRICE_JITTER_BPS"),
		AlpacaAPIKey:    v.GetString("ALPACA_API_KEY"),
		AlpacaAPISecret: v.GetString("ALPACA_API_SECRET"),
		AlpacaDataURL:   v.GetString("ALPACA_DATA_URL"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
		AuditBufferSize: v.GetInt("AUDIT_BUFFER_SIZE"),
		RateLimit:       v.GetString("RATE_LIMIT"),
	}

	ttl, err := time.ParseDuration(v.GetString("OTP_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid OTP_TTL %q", v.GetString("OTP_TTL"))
	}
	cfg.OTPTTL = ttl

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.PriceSource {
	case PriceSimulated, PriceStatic:
	case PriceAlpaca:
		if c.AlpacaAPIKey == "" || c.AlpacaAPISecret == "" {
			return fmt.Errorf("ALPACA_API_KEY and ALPACA_API_SECRET are required when PRICE_SOURCE=%s", PriceAlpaca)
		}
	default:
		return fmt.Errorf("unknown PRICE_SOURCE %q", c.PriceSource)
	}

	if c.FeeMinMinor < 0 || c.FeeRateBps < 0 {
		return fmt.Errorf("fee settings must not be negative")
	}
	if c.OTPLength < 4 || c.OTPLength > 10 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 10, got %d", c.OTPLength)
	}
	if c.OTPMaxAttempts < 1 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be at least 1")
	}

	if c.JWTSecret == defaultJWTSecret {
		if c.IsProduction {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	return nil
}

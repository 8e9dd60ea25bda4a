package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	MigrationsPath     string
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "300-M"
	RequestTimeout     time.Duration
	DefaultSegment     string
	DBMaxConns         int32

	// Fallback precision used until system_settings has a row
	DefaultPrecision domain.Precision
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("DEFAULT_SEGMENT", domain.DefaultSegment)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("AMOUNT_DECIMALS", 2)
	v.SetDefault("QUANTITY_DECIMALS", 3)
	v.SetDefault("RATE_DECIMALS", 6)

	// Environment variables override defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		DefaultSegment: domain.NormalizeSegment(v.GetString("DEFAULT_SEGMENT")),
		DBMaxConns:     v.GetInt32("DB_MAX_CONNS"),
		DefaultPrecision: domain.Precision{
			AmountDecimals:   v.GetInt32("AMOUNT_DECIMALS"),
			QuantityDecimals: v.GetInt32("QUANTITY_DECIMALS"),
			RateDecimals:     v.GetInt32("RATE_DECIMALS"),
		},
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	timeoutStr := v.GetString("REQUEST_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RequestTimeout = timeout

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
	}

	p := cfg.DefaultPrecision
	for name, d := range map[string]int32{
		"AMOUNT_DECIMALS":   p.AmountDecimals,
		"QUANTITY_DECIMALS": p.QuantityDecimals,
		"RATE_DECIMALS":     p.RateDecimals,
	} {
		if d < 0 || d > domain.MaxDecimals {
			return nil, fmt.Errorf("%s must be between 0 and %d, got %d", name, domain.MaxDecimals, d)
		}
	}

	return cfg, nil
}

package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string

	// SyncPageSize caps how many rows a single pull returns per table.
	SyncPageSize int
	// SyncRateLimit is a ulule/limiter formatted rate, e.g. "120-M".
	SyncRateLimit string
}

const defaultSyncPageSize = 1000

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SYNC_PAGE_SIZE", defaultSyncPageSize)
	viper.SetDefault("SYNC_RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		SyncPageSize:  viper.GetInt("SYNC_PAGE_SIZE"),
		SyncRateLimit: viper.GetString("SYNC_RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.SyncPageSize <= 0 {
		log.Printf("Warning: Invalid SYNC_PAGE_SIZE. Defaulting to %d.\n", defaultSyncPageSize)
		cfg.SyncPageSize = defaultSyncPageSize
	}

	return cfg, nil
}

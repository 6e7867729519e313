package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	JWTSecret string
	JWTIssuer string

	// BankName is the name under which the bank appears as buyer on T1
	// legs and seller on T2 legs.
	BankName string

	// SettlementPause is the wait between the T1 and T2 legs in the full
	// processing flow.
	SettlementPause time.Duration

	// LockTTL bounds how long a processing step may hold an application's
	// lock.
	LockTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "tawarruq-financing-app")
	viper.SetDefault("BANK_NAME", "Alif Islamic Bank")
	viper.SetDefault("SETTLEMENT_PAUSE", "2s")
	viper.SetDefault("LOCK_TTL", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	// Redis is optional: without it, processing locks degrade to
	// single-instance semantics.
	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Distributed processing locks are disabled.")
	}

	cfg.Port = viper.GetString("PORT")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BankName = viper.GetString("BANK_NAME")

	settlementPauseStr := viper.GetString("SETTLEMENT_PAUSE")
	settlementPause, err := time.ParseDuration(settlementPauseStr)
	if err != nil {
		settlementPause = 2 * time.Second
		log.Printf("Warning: Invalid value for SETTLEMENT_PAUSE ('%s'). Defaulting to %s.\n", settlementPauseStr, settlementPause)
	}
	cfg.SettlementPause = settlementPause

	lockTTLStr := viper.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL)
	}
	cfg.LockTTL = lockTTL

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}

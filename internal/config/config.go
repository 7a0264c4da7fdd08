package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig aggregates runtime configuration. Everything is injected via
// environment variables (optionally from a .env file) with workable
// defaults for local development.
type AppConfig struct {
	HTTPAddr string

	// DBPath is the SQLite database file. Empty selects the in-memory
	// repository instead.
	DBPath string

	// SeedDemoData populates a few open auctions on startup.
	SeedDemoData bool
}

// Load reads the configuration, consulting a .env file when present.
func Load() AppConfig {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return AppConfig{
		HTTPAddr:     getAddr(),
		DBPath:       getEnv("DB_PATH", ""),
		SeedDemoData: getBool("SEED_DEMO_DATA", false),
	}
}

func getAddr() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

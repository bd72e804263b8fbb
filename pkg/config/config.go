// Package config loads environment configuration, with .env support.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	MigrationsDir string // empty means the embedded migrations
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return &Config{
		DatabaseURL:   databaseURL,
		MigrationsDir: os.Getenv("MOMO_MIGRATIONS_DIR"),
	}, nil
}

// MigrationsDirFromEnv returns MOMO_MIGRATIONS_DIR from the environment
// (a .env file included). Unlike Load it does not require DATABASE_URL.
func MigrationsDirFromEnv() string {
	_ = godotenv.Load()
	return os.Getenv("MOMO_MIGRATIONS_DIR")
}

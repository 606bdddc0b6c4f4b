package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/acarlier/loto-backend/utils/logger"
)

type Config struct {
	Port         string
	DatabaseURL  string
	AllowOrigins []string
}

// Load reads .env if present and builds the runtime configuration from the
// environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AllowOrigins: []string{"http://localhost:3000"},
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		cfg.AllowOrigins = []string{origin}
	}
	if cfg.DatabaseURL == "" {
		logger.Log.Fatal("DATABASE_URL is required in .env or environment")
	}
	return cfg
}

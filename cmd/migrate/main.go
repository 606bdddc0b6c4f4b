package main

import (
	"github.com/acarlier/loto-backend/config"
	"github.com/acarlier/loto-backend/utils/logger"
)

func main() {
	cfg := config.Load()
	config.SetupDatabase(cfg.DatabaseURL) // connects + migrates
	logger.Info("Database migration completed")
}

package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/models"
	"github.com/acarlier/loto-backend/utils/logger"
)

var DB *gorm.DB

// SetupDatabase connects to DB and runs migrations.
func SetupDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("Failed to connect to DB: %v", err)
	}
	DB = db

	if err := Migrate(db); err != nil {
		logger.Log.Fatalf("Migration failed: %v", err)
	}

	logger.Info("Database connected and migrated")
	return db
}

// Migrate runs AutoMigrate over every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Event{},
		&models.Player{},
		&models.Game{},
		&models.Draw{},
		&models.Card{},
		&models.Winner{},
	)
}

package database

import (
	"fmt"
	"log"
	"time"

	"inventario-backend/config"
	"inventario-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxConnectRetries = 5
	connectRetryDelay = 2 * time.Second
)

// Connect opens the postgres connection, retrying a few times so the API
// survives the database container coming up after it.
func Connect() (*gorm.DB, error) {
	dsn := config.GetEnv("DATABASE_URL", "")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.GetEnv("DB_HOST", "db"),
			config.GetEnv("DB_PORT", "5432"),
			config.GetEnv("DB_USER", "admin"),
			config.GetEnv("DB_PASSWORD", "admin123"),
			config.GetEnv("DB_NAME", "inventario"),
		)
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		if attempt < maxConnectRetries {
			log.Printf("Database connection attempt %d failed, retrying in %s: %v",
				attempt, connectRetryDelay, err)
			time.Sleep(connectRetryDelay)
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxConnectRetries, err)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

// Ping verifies the underlying connection is alive. Used by the health
// endpoint.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

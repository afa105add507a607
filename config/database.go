package config

import (
	"fmt"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection and creates the tables
func InitDB(config *Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if config.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		// Duplicate keys surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	utils.LogInfo("Connected to database %s on %s:%s", config.DBName, config.DBHost, config.DBPort)
	return db, nil
}

// Migrate creates the users, books and user_books tables if missing
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.UserBook{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

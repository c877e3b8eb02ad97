package database

import (
	"fmt"
	"log"
	"os"

	"github.com/escolacolaco/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection
func Connect() error {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "escola.db"
	}
	return ConnectPath(path)
}

// ConnectPath opens the SQLite store at the given path and migrates the schema
func ConnectPath(path string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique violations come back as gorm.ErrDuplicatedKey
		TranslateError: true,
		// Foreign keys are recorded but not enforced: deleting a user
		// leaves dangling references in news/disciplines/enrollments,
		// matching the original store layout.
		DisableForeignKeyConstraintWhenMigrating: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	if err := autoMigrate(); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	return nil
}

// autoMigrate runs database migrations
func autoMigrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.News{},
		&models.Discipline{},
		&models.Enrollment{},
	)
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

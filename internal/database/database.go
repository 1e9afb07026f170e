package database

import (
	"fmt"

	"marksapi/internal/config"
	"marksapi/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and migrates the schema. Errors are returned to
// the caller rather than exiting, so entry points can decide how to fail.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables for all persistent entities. The
// unique indexes declared on the models are what upsert semantics rely on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Student{},
		&model.Mark{},
		&model.Staff{},
		&model.Upload{},
	); err != nil {
		return fmt.Errorf("failed to migrate the database: %w", err)
	}
	return nil
}

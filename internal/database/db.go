package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/models"
)

// Connect opens the Postgres connection and returns the handle.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	slog.Info("database connection established")
	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	slog.Info("running migrations")
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Company{},
		&models.Job{},
		&models.JobSkill{},
		&models.Application{},
		&models.ApplicationEvent{},
		&models.Resume{},
		&models.Digest{},
		&models.APIToken{},
	)
}

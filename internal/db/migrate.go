package db

import (
	"expense_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates or updates the users, expenses and budgets tables.
// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Expense{}, &domain.Budget{})
}

// MustMigrate runs Migrate and exits on failure, for process startup
func MustMigrate(db *gorm.DB) {
	if err := Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

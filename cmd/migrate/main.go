package main

import (
	"expense_tracker/internal/config" // Custom import path (Config)
	"expense_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Open a connection to the database
	gdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	db.MustMigrate(gdb)
}

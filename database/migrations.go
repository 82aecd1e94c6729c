package database

import (
	"taskflow-app/taskflow/models"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
		&models.EnhancedTask{},
		&models.AuditLog{},
		&models.Event{},
	)
}

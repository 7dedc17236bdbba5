package database

import (
	"gorm.io/gorm"

	"juaconnect_backend/internal/models"
)

// Migrate runs AutoMigrate for every entity. Called at startup and from the
// test helpers against their in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ServiceRequest{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	)
}

package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/models"
)

// AutoMigrate creates or updates the database schema for all models. Teams
// migrate first so that rentals and assignments can reference them.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}
	return db.AutoMigrate(
		&models.Team{},
		&models.Driver{},
		&models.EquipmentRental{},
		&models.CarAssignment{},
		&models.DriverAssignment{},
	)
}

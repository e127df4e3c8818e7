package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/internal/repository"
	"github.com/charlesng35/pitwall/pkg/validator"
)

// GetDriver loads a driver by id.
func (s *Store) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	return first[models.Driver](ctx, s, id)
}

// ListDrivers returns all drivers ordered by name.
func (s *Store) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.conn(ctx).Order("name ASC").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list drivers: %w", err)
	}
	return drivers, nil
}

// SaveDriver validates and stores the driver, returning its id.
func (s *Store) SaveDriver(ctx context.Context, driver *models.Driver) (string, error) {
	if driver == nil {
		return "", errors.New("gorm repository: driver is required")
	}
	if err := validator.ValidateStruct(driver); err != nil {
		return "", err
	}
	if err := save(ctx, s, driver.ID, driver); err != nil {
		return "", err
	}
	return driver.ID, nil
}

// DeleteDriver removes the driver and every assignment naming it.
func (s *Store) DeleteDriver(ctx context.Context, id string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var driver models.Driver
		if err := tx.First(&driver, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("driver_id = ?", id).Delete(&models.CarAssignment{}).Error; err != nil {
			return fmt.Errorf("delete car assignments: %w", err)
		}
		if err := tx.Where("driver_id = ?", id).Delete(&models.DriverAssignment{}).Error; err != nil {
			return fmt.Errorf("delete driver assignments: %w", err)
		}
		if err := tx.Delete(&driver).Error; err != nil {
			return fmt.Errorf("delete driver: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	default:
		return &repository.TransactionError{Op: "delete driver", Err: err}
	}
}

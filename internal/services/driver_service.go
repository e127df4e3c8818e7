package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/internal/repository"
	"github.com/charlesng35/pitwall/pkg/logger"
)

// DriverService manages the driver roster referenced by assignments.
type DriverService struct {
	repo repository.DriverRepository
	log  *zap.Logger
}

// NewDriverService constructs a DriverService.
func NewDriverService(repo repository.DriverRepository) (*DriverService, error) {
	if repo == nil {
		return nil, errors.New("driver service: repository is required")
	}
	return &DriverService{repo: repo, log: logger.WithModule("driver_service")}, nil
}

// Register stores a new driver.
func (s *DriverService) Register(ctx context.Context, name string, nationality *string) (*models.Driver, error) {
	ctx = ensureContext(ctx)

	driver, err := models.NewDriver(name, nationality)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.SaveDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("driver service: register driver: %w", err)
	}

	s.log.Info("driver registered", zap.String("driver_id", driver.ID), zap.String("name", driver.Name))
	return driver, nil
}

// Get loads a driver by id.
func (s *DriverService) Get(ctx context.Context, id string) (*models.Driver, error) {
	driver, err := s.repo.GetDriver(ensureContext(ctx), id)
	if err != nil {
		return nil, notFoundAs(err, ErrDriverNotFound)
	}
	return driver, nil
}

// List returns all drivers ordered by name.
func (s *DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return s.repo.ListDrivers(ensureContext(ctx))
}

// Remove deletes the driver together with every assignment naming it.
func (s *DriverService) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteDriver(ensureContext(ctx), id); err != nil {
		return notFoundAs(err, ErrDriverNotFound)
	}
	s.log.Info("driver removed", zap.String("driver_id", id))
	return nil
}

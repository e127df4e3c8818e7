package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/charlesng35/pitwall/internal/models"
)

// GetCarAssignment loads a car assignment by id.
func (s *Store) GetCarAssignment(ctx context.Context, id string) (*models.CarAssignment, error) {
	return first[models.CarAssignment](ctx, s, id)
}

// ListCarAssignments returns a team's cars ordered by series and number.
func (s *Store) ListCarAssignments(ctx context.Context, teamID string) ([]models.CarAssignment, error) {
	var cars []models.CarAssignment
	if err := s.conn(ctx).
		Where("team_id = ?", teamID).
		Order("series ASC").
		Order("car_number ASC").
		Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list car assignments: %w", err)
	}
	return cars, nil
}

// SaveCarAssignment validates and stores the assignment, returning its id.
func (s *Store) SaveCarAssignment(ctx context.Context, assignment *models.CarAssignment) (string, error) {
	if assignment == nil {
		return "", errors.New("gorm repository: car assignment is required")
	}
	if err := assignment.Validate(); err != nil {
		return "", err
	}
	if err := save(ctx, s, assignment.ID, assignment); err != nil {
		return "", err
	}
	return assignment.ID, nil
}

// DeleteCarAssignment removes a car assignment by id.
func (s *Store) DeleteCarAssignment(ctx context.Context, id string) error {
	return remove[models.CarAssignment](ctx, s, id)
}

// GetDriverAssignment loads a driver assignment by id.
func (s *Store) GetDriverAssignment(ctx context.Context, id string) (*models.DriverAssignment, error) {
	return first[models.DriverAssignment](ctx, s, id)
}

// ListDriverAssignments returns a team's driver entries ordered by series.
func (s *Store) ListDriverAssignments(ctx context.Context, teamID string) ([]models.DriverAssignment, error) {
	var drivers []models.DriverAssignment
	if err := s.conn(ctx).
		Where("team_id = ?", teamID).
		Order("series ASC").
		Order("created_at ASC").
		Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list driver assignments: %w", err)
	}
	return drivers, nil
}

// SaveDriverAssignment validates and stores the assignment, returning its id.
func (s *Store) SaveDriverAssignment(ctx context.Context, assignment *models.DriverAssignment) (string, error) {
	if assignment == nil {
		return "", errors.New("gorm repository: driver assignment is required")
	}
	if err := assignment.Validate(); err != nil {
		return "", err
	}
	if err := save(ctx, s, assignment.ID, assignment); err != nil {
		return "", err
	}
	return assignment.ID, nil
}

// DeleteDriverAssignment removes a driver assignment by id.
func (s *Store) DeleteDriverAssignment(ctx context.Context, id string) error {
	return remove[models.DriverAssignment](ctx, s, id)
}

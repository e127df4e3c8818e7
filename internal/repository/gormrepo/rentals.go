package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/charlesng35/pitwall/internal/models"
)

// GetRental loads a rental by id.
func (s *Store) GetRental(ctx context.Context, id string) (*models.EquipmentRental, error) {
	return first[models.EquipmentRental](ctx, s, id)
}

// ListRentals returns every rental link.
func (s *Store) ListRentals(ctx context.Context) ([]models.EquipmentRental, error) {
	var rentals []models.EquipmentRental
	if err := s.conn(ctx).Order("created_at ASC").Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list rentals: %w", err)
	}
	return rentals, nil
}

// ListRentalsForTeam returns rentals lent or borrowed by the team.
func (s *Store) ListRentalsForTeam(ctx context.Context, teamID string) ([]models.EquipmentRental, error) {
	var rentals []models.EquipmentRental
	if err := s.conn(ctx).
		Where("from_id = ? OR to_id = ?", teamID, teamID).
		Order("created_at ASC").
		Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list rentals for team: %w", err)
	}
	return rentals, nil
}

// SaveRental validates and stores the rental, returning its id.
func (s *Store) SaveRental(ctx context.Context, rental *models.EquipmentRental) (string, error) {
	if rental == nil {
		return "", errors.New("gorm repository: rental is required")
	}
	if err := rental.Validate(); err != nil {
		return "", err
	}
	if err := save(ctx, s, rental.ID, rental); err != nil {
		return "", err
	}
	return rental.ID, nil
}

// DeleteRental removes a rental by id.
func (s *Store) DeleteRental(ctx context.Context, id string) error {
	return remove[models.EquipmentRental](ctx, s, id)
}

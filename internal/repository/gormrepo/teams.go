package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/internal/repository"
)

// GetTeam loads a team by id.
func (s *Store) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return first[models.Team](ctx, s, id)
}

// ListTeams returns all teams ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := s.conn(ctx).Order("name ASC").Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("gorm repository: list teams: %w", err)
	}
	return teams, nil
}

// SaveTeam validates and stores the team, returning its id.
func (s *Store) SaveTeam(ctx context.Context, team *models.Team) (string, error) {
	if team == nil {
		return "", errors.New("gorm repository: team is required")
	}
	if err := team.Validate(); err != nil {
		return "", err
	}
	if err := save(ctx, s, team.ID, team); err != nil {
		return "", err
	}
	return team.ID, nil
}

// DeleteTeam removes the team with its car assignments, driver assignments and
// rentals in both directions, and detaches teams borrowing from it. All of it
// happens in one transaction.
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.CarAssignment{}).Error; err != nil {
			return fmt.Errorf("delete car assignments: %w", err)
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.DriverAssignment{}).Error; err != nil {
			return fmt.Errorf("delete driver assignments: %w", err)
		}
		if err := tx.Where("from_id = ? OR to_id = ?", id, id).Delete(&models.EquipmentRental{}).Error; err != nil {
			return fmt.Errorf("delete rentals: %w", err)
		}
		if err := tx.Model(&models.Team{}).
			Where("equipment_rented_from = ?", id).
			Update("equipment_rented_from", nil).Error; err != nil {
			return fmt.Errorf("detach borrowers: %w", err)
		}
		if err := tx.Delete(&team).Error; err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	default:
		return &repository.TransactionError{Op: "delete team", Err: err}
	}
}

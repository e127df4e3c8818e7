package rating

import (
	"github.com/samber/lo"

	"github.com/charlesng35/pitwall/internal/models"
)

// EffectiveEquipmentRating returns the equipment rating a team races with.
//
// A team that rents equipment uses its own actual equipment rating plus the
// bonus of the rental from its lender. Otherwise the used equipment rating
// applies unchanged.
func EffectiveEquipmentRating(team *models.Team, rentals []models.EquipmentRental) (float64, error) {
	if !team.IsRenting() {
		return team.UsedEquipmentRating, nil
	}

	rental, ok := ActiveRental(team, rentals)
	if !ok {
		return 0, &InconsistentDataError{TeamID: team.ID, LenderID: *team.EquipmentRentedFrom}
	}
	return team.ActualEquipmentRating + float64(rental.EquipmentBonus), nil
}

// TeamPerformance is the mean of the effective equipment rating and the
// personnel rating.
func TeamPerformance(team *models.Team, rentals []models.EquipmentRental) (float64, error) {
	equipment, err := EffectiveEquipmentRating(team, rentals)
	if err != nil {
		return 0, err
	}
	return performance(equipment, team.PersonnelRating), nil
}

// Serialize renders the team view with freshly computed ratings.
func Serialize(team *models.Team, rentals []models.EquipmentRental) (models.TeamView, error) {
	equipment, err := EffectiveEquipmentRating(team, rentals)
	if err != nil {
		return models.TeamView{}, err
	}
	return team.Serialize(equipment, performance(equipment, team.PersonnelRating)), nil
}

// Summary renders the team's human summary with its effective equipment rating.
func Summary(team *models.Team, rentals []models.EquipmentRental) (string, error) {
	equipment, err := EffectiveEquipmentRating(team, rentals)
	if err != nil {
		return "", err
	}
	return team.Summary(equipment), nil
}

// Stale reports whether the stored team_performance differs from the computed
// value, and returns the computed value.
func Stale(team *models.Team, rentals []models.EquipmentRental) (bool, float64, error) {
	computed, err := TeamPerformance(team, rentals)
	if err != nil {
		return false, 0, err
	}
	return computed != team.TeamPerformance, computed, nil
}

// ActiveRental finds the rental linking the team's lender to the team.
func ActiveRental(team *models.Team, rentals []models.EquipmentRental) (models.EquipmentRental, bool) {
	if !team.IsRenting() {
		return models.EquipmentRental{}, false
	}
	lender := *team.EquipmentRentedFrom
	return lo.Find(rentals, func(r models.EquipmentRental) bool {
		return r.Links(lender, team.ID)
	})
}

func performance(equipment, personnel float64) float64 {
	return (equipment + personnel) / 2
}

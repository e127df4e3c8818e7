package models

import (
	"fmt"
	"strings"

	"github.com/charlesng35/pitwall/pkg/validator"
)

// Team is a racing team with its equipment and personnel ratings.
//
// TeamPerformance is stored denormalised; the rating package recomputes it from
// the other ratings and any equipment rental the team holds.
type Team struct {
	BaseModel

	Name                  string  `gorm:"size:32;not null;index" json:"name" validate:"required,notblank,max=32"`
	Owner                 *string `gorm:"size:32;index" json:"owner" validate:"omitempty,max=32"`
	CarManufacturer       *string `gorm:"size:32" json:"car_manufacturer" validate:"omitempty,max=32"`
	UsedEquipmentRating   float64 `gorm:"not null" json:"used_equipment_rating"`
	ActualEquipmentRating float64 `gorm:"not null" json:"actual_equipment_rating"`
	PersonnelRating       float64 `gorm:"not null" json:"personnel_rating"`
	TeamPerformance       float64 `gorm:"not null" json:"team_performance"`
	Notes                 *string `gorm:"size:128" json:"notes" validate:"omitempty,max=128"`

	EquipmentRentedFrom *string `gorm:"size:36;index" json:"equipment_rented_from"`
	Lender              *Team   `gorm:"foreignKey:EquipmentRentedFrom;constraint:OnDelete:SET NULL" json:"-"`
}

// TeamInput carries the caller supplied fields for a new team. Ratings are
// pointers so that a missing rating is distinguishable from a zero rating.
type TeamInput struct {
	Name                  string   `json:"name" validate:"required,notblank,max=32"`
	Owner                 *string  `json:"owner" validate:"omitempty,max=32"`
	CarManufacturer       *string  `json:"car_manufacturer" validate:"omitempty,max=32"`
	UsedEquipmentRating   *float64 `json:"used_equipment_rating" validate:"required"`
	ActualEquipmentRating *float64 `json:"actual_equipment_rating" validate:"required"`
	PersonnelRating       *float64 `json:"personnel_rating" validate:"required"`
	Notes                 *string  `json:"notes" validate:"omitempty,max=128"`
	EquipmentRentedFrom   *string  `json:"equipment_rented_from"`
}

// NewTeam validates the input and builds an unsaved Team. TeamPerformance is
// left at zero until the rating engine fills it in.
func NewTeam(input TeamInput) (*Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validator.ValidateStruct(input); err != nil {
		return nil, err
	}

	team := &Team{
		Name:                  input.Name,
		Owner:                 trimOptional(input.Owner),
		CarManufacturer:       trimOptional(input.CarManufacturer),
		UsedEquipmentRating:   *input.UsedEquipmentRating,
		ActualEquipmentRating: *input.ActualEquipmentRating,
		PersonnelRating:       *input.PersonnelRating,
		Notes:                 trimOptional(input.Notes),
		EquipmentRentedFrom:   trimOptional(input.EquipmentRentedFrom),
	}
	return team, nil
}

// Validate re-checks field constraints and the no-self-rental invariant.
func (t *Team) Validate() error {
	var extra []validator.ValidationError
	if t.IsRenting() && t.ID != "" && *t.EquipmentRentedFrom == t.ID {
		extra = append(extra, validator.ValidationError{
			Field: "equipment_rented_from",
			Tag:   "nefield",
			Param: "id",
		})
	}
	return validator.Merge(validator.ValidateStruct(t), extra...)
}

// IsRenting reports whether the team currently uses equipment from a lender.
func (t *Team) IsRenting() bool {
	return t.EquipmentRentedFrom != nil && *t.EquipmentRentedFrom != ""
}

// TeamView is the public serialised form of a Team. Optional strings render as
// null rather than being omitted.
type TeamView struct {
	Name            string  `json:"name"`
	Owner           *string `json:"owner"`
	CarManufacturer *string `json:"car_manufacturer"`
	EquipmentRating float64 `json:"equipment_rating"`
	PersonnelRating float64 `json:"personnel_rating"`
	TeamPerformance float64 `json:"team_performance"`
}

// Serialize builds the view using the supplied effective equipment rating and
// performance.
func (t *Team) Serialize(equipmentRating, performance float64) TeamView {
	return TeamView{
		Name:            t.Name,
		Owner:           t.Owner,
		CarManufacturer: t.CarManufacturer,
		EquipmentRating: equipmentRating,
		PersonnelRating: t.PersonnelRating,
		TeamPerformance: performance,
	}
}

// Summary renders the multi-line human summary using the supplied effective
// equipment rating.
func (t *Team) Summary(equipmentRating float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team Name: %s\n", t.Name)
	fmt.Fprintf(&b, "Owner: %s\n", optionalString(t.Owner))
	fmt.Fprintf(&b, "Car Manufacturer: %s\n", optionalString(t.CarManufacturer))
	fmt.Fprintf(&b, "Equipment Rating: %g\n", equipmentRating)
	fmt.Fprintf(&b, "Personnel Rating: %g\n", t.PersonnelRating)
	fmt.Fprintf(&b, "Team Performance: %g\n", t.TeamPerformance)
	return b.String()
}

func (t *Team) String() string {
	return fmt.Sprintf("<Team %s>", t.Name)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalString(value *string) string {
	if value == nil {
		return "None"
	}
	return *value
}

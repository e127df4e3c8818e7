package models

import (
	"strings"

	"github.com/charlesng35/pitwall/pkg/validator"
)

// CarAssignment puts a driver in a numbered team car for a series.
type CarAssignment struct {
	BaseModel

	Series    string `gorm:"size:32;not null;index;uniqueIndex:idx_team_series_car" json:"series" validate:"required,notblank,max=32"`
	CarNumber int    `gorm:"not null;uniqueIndex:idx_team_series_car" json:"car_number" validate:"gt=0"`
	TeamID    string `gorm:"size:36;not null;index;uniqueIndex:idx_team_series_car" json:"team_id" validate:"required"`
	DriverID  string `gorm:"size:36;not null;index" json:"driver_id" validate:"required"`

	Team   *Team   `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Driver *Driver `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewCarAssignment validates and builds a car assignment.
func NewCarAssignment(teamID, driverID, series string, carNumber int) (*CarAssignment, error) {
	assignment := &CarAssignment{
		Series:    strings.TrimSpace(series),
		CarNumber: carNumber,
		TeamID:    strings.TrimSpace(teamID),
		DriverID:  strings.TrimSpace(driverID),
	}
	if err := assignment.Validate(); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Validate checks required references and a positive car number.
func (a *CarAssignment) Validate() error {
	return validator.ValidateStruct(a)
}

// DriverAssignment enters a driver for a team in a series. A driver holds at
// most one assignment per team and series.
type DriverAssignment struct {
	BaseModel

	Series   string `gorm:"size:32;not null;index;uniqueIndex:idx_team_driver_series" json:"series" validate:"required,notblank,max=32"`
	TeamID   string `gorm:"size:36;not null;index;uniqueIndex:idx_team_driver_series" json:"team_id" validate:"required"`
	DriverID string `gorm:"size:36;not null;index;uniqueIndex:idx_team_driver_series" json:"driver_id" validate:"required"`

	Team   *Team   `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Driver *Driver `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewDriverAssignment validates and builds a driver assignment.
func NewDriverAssignment(teamID, driverID, series string) (*DriverAssignment, error) {
	assignment := &DriverAssignment{
		Series:   strings.TrimSpace(series),
		TeamID:   strings.TrimSpace(teamID),
		DriverID: strings.TrimSpace(driverID),
	}
	if err := assignment.Validate(); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Validate checks required references and series.
func (a *DriverAssignment) Validate() error {
	return validator.ValidateStruct(a)
}

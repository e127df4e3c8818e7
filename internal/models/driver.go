package models

import (
	"strings"

	"github.com/charlesng35/pitwall/pkg/validator"
)

// Driver is a racing driver that can be assigned to team cars.
type Driver struct {
	BaseModel

	Name        string  `gorm:"size:32;not null;index" json:"name" validate:"required,notblank,max=32"`
	Nationality *string `gorm:"size:32" json:"nationality" validate:"omitempty,max=32"`
}

// NewDriver validates and builds a driver.
func NewDriver(name string, nationality *string) (*Driver, error) {
	driver := &Driver{
		Name:        strings.TrimSpace(name),
		Nationality: trimOptional(nationality),
	}
	if err := validator.ValidateStruct(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

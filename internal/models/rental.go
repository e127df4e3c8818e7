package models

import (
	"strings"

	"github.com/charlesng35/pitwall/pkg/validator"
)

// EquipmentRental is a directional loan of equipment from one team to another.
// EquipmentBonus is added to the borrower's actual equipment rating and may be
// negative.
type EquipmentRental struct {
	BaseModel

	EquipmentBonus int    `gorm:"not null;default:0" json:"equipment_bonus"`
	FromID         string `gorm:"size:36;not null;uniqueIndex:idx_rental_pair" json:"from_id" validate:"required"`
	ToID           string `gorm:"size:36;not null;uniqueIndex:idx_rental_pair;index" json:"to_id" validate:"required,nefield=FromID"`

	From *Team `gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE" json:"-"`
	To   *Team `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewEquipmentRental builds a rental link from lender to borrower.
func NewEquipmentRental(fromID, toID string, bonus int) (*EquipmentRental, error) {
	rental := &EquipmentRental{
		EquipmentBonus: bonus,
		FromID:         strings.TrimSpace(fromID),
		ToID:           strings.TrimSpace(toID),
	}
	if err := rental.Validate(); err != nil {
		return nil, err
	}
	return rental, nil
}

// Validate checks that both ends are set and differ.
func (r *EquipmentRental) Validate() error {
	return validator.ValidateStruct(r)
}

// Links reports whether the rental goes from lender to borrower.
func (r EquipmentRental) Links(lenderID, borrowerID string) bool {
	return r.FromID == lenderID && r.ToID == borrowerID
}

package repository

import (
	"context"

	"github.com/charlesng35/pitwall/internal/models"
)

// TeamRepository persists teams. DeleteTeam removes the team together with its
// assignments and rentals, or nothing at all.
type TeamRepository interface {
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	SaveTeam(ctx context.Context, team *models.Team) (string, error)
	DeleteTeam(ctx context.Context, id string) error
}

// RentalRepository persists equipment rental links.
type RentalRepository interface {
	GetRental(ctx context.Context, id string) (*models.EquipmentRental, error)
	ListRentals(ctx context.Context) ([]models.EquipmentRental, error)
	// ListRentalsForTeam returns rentals where the team is lender or borrower.
	ListRentalsForTeam(ctx context.Context, teamID string) ([]models.EquipmentRental, error)
	SaveRental(ctx context.Context, rental *models.EquipmentRental) (string, error)
	DeleteRental(ctx context.Context, id string) error
}

// CarAssignmentRepository persists car assignments.
type CarAssignmentRepository interface {
	GetCarAssignment(ctx context.Context, id string) (*models.CarAssignment, error)
	ListCarAssignments(ctx context.Context, teamID string) ([]models.CarAssignment, error)
	SaveCarAssignment(ctx context.Context, assignment *models.CarAssignment) (string, error)
	DeleteCarAssignment(ctx context.Context, id string) error
}

// DriverAssignmentRepository persists driver assignments.
type DriverAssignmentRepository interface {
	GetDriverAssignment(ctx context.Context, id string) (*models.DriverAssignment, error)
	ListDriverAssignments(ctx context.Context, teamID string) ([]models.DriverAssignment, error)
	SaveDriverAssignment(ctx context.Context, assignment *models.DriverAssignment) (string, error)
	DeleteDriverAssignment(ctx context.Context, id string) error
}

// DriverRepository persists drivers. DeleteDriver cascades to assignments.
type DriverRepository interface {
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	SaveDriver(ctx context.Context, driver *models.Driver) (string, error)
	DeleteDriver(ctx context.Context, id string) error
}

// Repository is the full storage capability set.
type Repository interface {
	TeamRepository
	RentalRepository
	CarAssignmentRepository
	DriverAssignmentRepository
	DriverRepository

	// Atomic runs fn against a repository bound to a single transaction. Any
	// error returned by fn rolls the transaction back.
	Atomic(ctx context.Context, fn func(Repository) error) error
}

package services

import (
	"errors"
	"net/http"

	"github.com/charlesng35/pitwall/internal/repository"
	apperrors "github.com/charlesng35/pitwall/pkg/errors"
)

var (
	// ErrTeamNotFound indicates the requested team does not exist.
	ErrTeamNotFound = apperrors.New("TEAM_NOT_FOUND", "Team not found", http.StatusNotFound)
	// ErrDriverNotFound indicates the requested driver does not exist.
	ErrDriverNotFound = apperrors.New("DRIVER_NOT_FOUND", "Driver not found", http.StatusNotFound)
	// ErrAssignmentNotFound indicates the requested car or driver assignment does not exist.
	ErrAssignmentNotFound = apperrors.New("ASSIGNMENT_NOT_FOUND", "Assignment not found", http.StatusNotFound)
	// ErrAlreadyRenting signals the borrower already rents equipment from a lender.
	ErrAlreadyRenting = apperrors.New("ALREADY_RENTING", "Team already rents equipment", http.StatusConflict)
	// ErrNotRenting signals the team has no equipment to return.
	ErrNotRenting = apperrors.New("NOT_RENTING", "Team does not rent equipment", http.StatusConflict)
	// ErrCarNumberTaken signals the car number is used by the team in that series.
	ErrCarNumberTaken = apperrors.New("CAR_NUMBER_TAKEN", "Car number already in use for this team and series", http.StatusConflict)
	// ErrDriverAlreadyAssigned signals the driver is already entered for the team in that series.
	ErrDriverAlreadyAssigned = apperrors.New("DRIVER_ALREADY_ASSIGNED", "Driver already assigned to this team and series", http.StatusConflict)
)

// notFoundAs maps repository.ErrNotFound to the supplied domain error.
func notFoundAs(err error, target *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}

// conflictAs maps repository.ErrConflict to the supplied domain error, keeping
// the storage error attached.
func conflictAs(err error, target *apperrors.AppError) error {
	if errors.Is(err, repository.ErrConflict) {
		return target.WithInternal(err)
	}
	return err
}

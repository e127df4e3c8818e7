package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/charlesng35/pitwall/internal/models"
)

// AssignCar enters a driver in one of the team's cars for a series. Car
// numbers are unique per team and series.
func (s *TeamService) AssignCar(ctx context.Context, teamID, driverID, series string, carNumber int) (*models.CarAssignment, error) {
	ctx = ensureContext(ctx)

	if err := s.requireTeamAndDriver(ctx, teamID, driverID); err != nil {
		return nil, err
	}

	car, err := models.NewCarAssignment(teamID, driverID, series, carNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.SaveCarAssignment(ctx, car); err != nil {
		return nil, conflictAs(err, ErrCarNumberTaken)
	}

	s.log.Info("car assigned",
		zap.String("team_id", teamID),
		zap.String("driver_id", driverID),
		zap.String("series", car.Series),
		zap.Int("car_number", carNumber),
	)
	return car, nil
}

// UnassignCar removes a car assignment.
func (s *TeamService) UnassignCar(ctx context.Context, id string) error {
	return notFoundAs(s.repo.DeleteCarAssignment(ensureContext(ctx), id), ErrAssignmentNotFound)
}

// ListCars returns the team's car assignments.
func (s *TeamService) ListCars(ctx context.Context, teamID string) ([]models.CarAssignment, error) {
	ctx = ensureContext(ctx)

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListCarAssignments(ctx, teamID)
}

// AssignDriver enters a driver for the team in a series.
func (s *TeamService) AssignDriver(ctx context.Context, teamID, driverID, series string) (*models.DriverAssignment, error) {
	ctx = ensureContext(ctx)

	if err := s.requireTeamAndDriver(ctx, teamID, driverID); err != nil {
		return nil, err
	}

	entry, err := models.NewDriverAssignment(teamID, driverID, series)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.SaveDriverAssignment(ctx, entry); err != nil {
		return nil, conflictAs(err, ErrDriverAlreadyAssigned)
	}

	s.log.Info("driver assigned",
		zap.String("team_id", teamID),
		zap.String("driver_id", driverID),
		zap.String("series", entry.Series),
	)
	return entry, nil
}

// UnassignDriver removes a driver assignment.
func (s *TeamService) UnassignDriver(ctx context.Context, id string) error {
	return notFoundAs(s.repo.DeleteDriverAssignment(ensureContext(ctx), id), ErrAssignmentNotFound)
}

// ListDrivers returns the team's driver assignments.
func (s *TeamService) ListDrivers(ctx context.Context, teamID string) ([]models.DriverAssignment, error) {
	ctx = ensureContext(ctx)

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListDriverAssignments(ctx, teamID)
}

func (s *TeamService) requireTeamAndDriver(ctx context.Context, teamID, driverID string) error {
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return err
	}
	if _, err := s.repo.GetDriver(ctx, driverID); err != nil {
		return notFoundAs(err, ErrDriverNotFound)
	}
	return nil
}

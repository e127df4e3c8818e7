package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/charlesng35/pitwall/internal/cache"
	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/internal/rating"
	"github.com/charlesng35/pitwall/internal/repository"
	apperrors "github.com/charlesng35/pitwall/pkg/errors"
	"github.com/charlesng35/pitwall/pkg/logger"
	"github.com/charlesng35/pitwall/pkg/metrics"
)

const (
	defaultViewTTL = 5 * time.Minute
	viewKeyPrefix  = "team:view:"

	triggerWrite   = "write"
	triggerRefresh = "refresh"
)

// UpdateTeamInput describes mutable team fields. Nil fields are left alone; an
// empty string clears an optional text field.
type UpdateTeamInput struct {
	Name                  *string
	Owner                 *string
	CarManufacturer       *string
	Notes                 *string
	UsedEquipmentRating   *float64
	ActualEquipmentRating *float64
	PersonnelRating       *float64
}

// TeamServiceOption customises a TeamService.
type TeamServiceOption func(*TeamService)

// WithViewTTL sets how long serialized team views stay cached.
func WithViewTTL(ttl time.Duration) TeamServiceOption {
	return func(s *TeamService) {
		if ttl > 0 {
			s.viewTTL = ttl
		}
	}
}

// WithTeamLogger overrides the service logger.
func WithTeamLogger(log *zap.Logger) TeamServiceOption {
	return func(s *TeamService) {
		if log != nil {
			s.log = log
		}
	}
}

// TeamService handles team lifecycle, equipment rentals and car/driver
// assignments. It keeps the stored team_performance in step with the rating
// engine and caches serialized views.
type TeamService struct {
	repo    repository.Repository
	store   cache.Store
	viewTTL time.Duration
	log     *zap.Logger
}

// NewTeamService constructs a TeamService. store may be nil to disable view
// caching.
func NewTeamService(repo repository.Repository, store cache.Store, opts ...TeamServiceOption) (*TeamService, error) {
	if repo == nil {
		return nil, errors.New("team service: repository is required")
	}
	svc := &TeamService{
		repo:    repo,
		store:   store,
		viewTTL: defaultViewTTL,
		log:     logger.WithModule("team_service"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateTeam validates the input, computes team_performance and stores the
// team. Rentals are set up afterwards through RentEquipment.
func (s *TeamService) CreateTeam(ctx context.Context, input models.TeamInput) (*models.Team, error) {
	ctx = ensureContext(ctx)

	if optionalTrimmed(input.EquipmentRentedFrom) != nil {
		return nil, apperrors.NewBadRequest("equipment_rented_from is set by renting equipment")
	}

	team, err := models.NewTeam(input)
	if err != nil {
		return nil, err
	}

	perf, err := rating.TeamPerformance(team, nil)
	observeRating(err)
	if err != nil {
		return nil, err
	}
	team.TeamPerformance = perf

	if _, err := s.repo.SaveTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("team service: create team: %w", err)
	}

	s.log.Info("team created",
		zap.String("team_id", team.ID),
		zap.String("name", team.Name),
		zap.Float64("team_performance", team.TeamPerformance),
	)
	return team, nil
}

// UpdateTeam applies a partial update and recomputes team_performance.
func (s *TeamService) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	ctx = ensureContext(ctx)

	var updated *models.Team
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		team, err := tx.GetTeam(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrTeamNotFound)
		}

		if input.Name != nil {
			team.Name = strings.TrimSpace(*input.Name)
		}
		if input.Owner != nil {
			team.Owner = optionalTrimmed(input.Owner)
		}
		if input.CarManufacturer != nil {
			team.CarManufacturer = optionalTrimmed(input.CarManufacturer)
		}
		if input.Notes != nil {
			team.Notes = optionalTrimmed(input.Notes)
		}
		if input.UsedEquipmentRating != nil {
			team.UsedEquipmentRating = *input.UsedEquipmentRating
		}
		if input.ActualEquipmentRating != nil {
			team.ActualEquipmentRating = *input.ActualEquipmentRating
		}
		if input.PersonnelRating != nil {
			team.PersonnelRating = *input.PersonnelRating
		}

		if err := s.persistPerformance(ctx, tx, team, triggerWrite); err != nil {
			return err
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

// GetTeam loads a team by id.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	ctx = ensureContext(ctx)

	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTeamNotFound)
	}
	return team, nil
}

// ListTeams returns all teams ordered by name.
func (s *TeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.repo.ListTeams(ensureContext(ctx))
}

// DeleteTeam removes the team with its assignments and rentals. Teams that
// borrowed equipment from it fall back to their used equipment rating. Any
// failure after the team was found rolls everything back and is reported as a
// *repository.TransactionError.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	var borrowerIDs []string
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		teams, err := tx.ListTeams(ctx)
		if err != nil {
			return err
		}
		borrowers := lo.Filter(teams, func(team models.Team, _ int) bool {
			return team.EquipmentRentedFrom != nil && *team.EquipmentRentedFrom == id
		})

		if err := tx.DeleteTeam(ctx, id); err != nil {
			return err
		}

		for i := range borrowers {
			borrower := &borrowers[i]
			borrower.EquipmentRentedFrom = nil
			if err := s.persistPerformance(ctx, tx, borrower, triggerWrite); err != nil {
				return err
			}
			borrowerIDs = append(borrowerIDs, borrower.ID)
		}
		return nil
	})

	var txErr *repository.TransactionError
	if err != nil && !errors.Is(err, repository.ErrNotFound) && !errors.As(err, &txErr) {
		err = &repository.TransactionError{Op: "delete team", Err: err}
	}

	switch {
	case err == nil:
		metrics.CascadeDeletes.WithLabelValues("success").Inc()
	case errors.As(err, &txErr):
		metrics.CascadeDeletes.WithLabelValues("rollback").Inc()
		s.log.Warn("team delete rolled back", zap.String("team_id", id), zap.Error(err))
		return err
	default:
		return notFoundAs(err, ErrTeamNotFound)
	}

	s.invalidate(ctx, append([]string{id}, borrowerIDs...)...)
	s.log.Info("team deleted",
		zap.String("team_id", id),
		zap.Strings("detached_borrowers", borrowerIDs),
	)
	return nil
}

// RentEquipment lends equipment from one team to another. The borrower's
// performance is recomputed with the rental bonus.
func (s *TeamService) RentEquipment(ctx context.Context, fromID, toID string, bonus int) (*models.EquipmentRental, error) {
	ctx = ensureContext(ctx)

	var rental *models.EquipmentRental
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		borrower, err := tx.GetTeam(ctx, toID)
		if err != nil {
			return notFoundAs(err, ErrTeamNotFound)
		}
		if _, err := tx.GetTeam(ctx, fromID); err != nil {
			return notFoundAs(err, ErrTeamNotFound)
		}
		if borrower.IsRenting() {
			return ErrAlreadyRenting
		}

		rental, err = models.NewEquipmentRental(fromID, toID, bonus)
		if err != nil {
			return err
		}
		if _, err := tx.SaveRental(ctx, rental); err != nil {
			return err
		}

		lender := fromID
		borrower.EquipmentRentedFrom = &lender
		return s.persistPerformance(ctx, tx, borrower, triggerWrite)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, toID)
	s.log.Info("equipment rented",
		zap.String("from", fromID),
		zap.String("to", toID),
		zap.Int("equipment_bonus", bonus),
	)
	return rental, nil
}

// ReturnEquipment ends the borrower's rental. A borrower whose rental record
// is missing gets its dangling reference cleared as well.
func (s *TeamService) ReturnEquipment(ctx context.Context, toID string) error {
	ctx = ensureContext(ctx)

	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		borrower, err := tx.GetTeam(ctx, toID)
		if err != nil {
			return notFoundAs(err, ErrTeamNotFound)
		}
		if !borrower.IsRenting() {
			return ErrNotRenting
		}

		rentals, err := tx.ListRentalsForTeam(ctx, toID)
		if err != nil {
			return err
		}
		if active, ok := rating.ActiveRental(borrower, rentals); ok {
			if err := tx.DeleteRental(ctx, active.ID); err != nil {
				return err
			}
		} else {
			s.log.Warn("clearing dangling rental reference",
				zap.String("team_id", toID),
				zap.String("lender_id", *borrower.EquipmentRentedFrom),
			)
		}

		borrower.EquipmentRentedFrom = nil
		return s.persistPerformance(ctx, tx, borrower, triggerWrite)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, toID)
	s.log.Info("equipment returned", zap.String("team_id", toID))
	return nil
}

// RecomputePerformance persists a fresh team_performance when the stored value
// is stale. It reports whether the team was updated.
func (s *TeamService) RecomputePerformance(ctx context.Context, id string) (bool, error) {
	ctx = ensureContext(ctx)

	var changed bool
	err := s.repo.Atomic(ctx, func(tx repository.Repository) error {
		team, err := tx.GetTeam(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrTeamNotFound)
		}
		rentals, err := tx.ListRentalsForTeam(ctx, id)
		if err != nil {
			return err
		}

		stale, computed, err := rating.Stale(team, rentals)
		observeRating(err)
		if err != nil || !stale {
			return err
		}

		team.TeamPerformance = computed
		if _, err := tx.SaveTeam(ctx, team); err != nil {
			return err
		}
		metrics.PerformanceUpdates.WithLabelValues(triggerRefresh).Inc()
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if changed {
		s.invalidate(ctx, id)
	}
	return changed, nil
}

// TeamView returns the serialized team with freshly computed ratings. Views
// are cached until the TTL expires or a write touches the team.
func (s *TeamService) TeamView(ctx context.Context, id string) (models.TeamView, error) {
	ctx = ensureContext(ctx)
	key := viewKey(id)

	if s.store != nil {
		var cached models.TeamView
		hit, err := cache.GetJSON(ctx, s.store, key, &cached)
		switch {
		case err != nil:
			metrics.ViewCache.WithLabelValues("error").Inc()
			s.log.Warn("team view cache read failed", zap.String("team_id", id), zap.Error(err))
		case hit:
			metrics.ViewCache.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ViewCache.WithLabelValues("miss").Inc()
		}
	}

	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		return models.TeamView{}, notFoundAs(err, ErrTeamNotFound)
	}
	rentals, err := s.repo.ListRentalsForTeam(ctx, id)
	if err != nil {
		return models.TeamView{}, err
	}

	view, err := rating.Serialize(team, rentals)
	observeRating(err)
	if err != nil {
		return models.TeamView{}, err
	}

	if s.store != nil {
		if err := cache.SetJSON(ctx, s.store, key, view, s.viewTTL); err != nil {
			s.log.Warn("team view cache write failed", zap.String("team_id", id), zap.Error(err))
		}
	}
	return view, nil
}

// persistPerformance recomputes the team's performance from its rentals and
// saves the team.
func (s *TeamService) persistPerformance(ctx context.Context, tx repository.Repository, team *models.Team, trigger string) error {
	rentals, err := tx.ListRentalsForTeam(ctx, team.ID)
	if err != nil {
		return err
	}

	perf, err := rating.TeamPerformance(team, rentals)
	observeRating(err)
	if err != nil {
		return err
	}

	team.TeamPerformance = perf
	if _, err := tx.SaveTeam(ctx, team); err != nil {
		return err
	}
	metrics.PerformanceUpdates.WithLabelValues(trigger).Inc()
	return nil
}

func (s *TeamService) invalidate(ctx context.Context, teamIDs ...string) {
	if s.store == nil {
		return
	}
	keys := lo.Map(normaliseIDs(teamIDs), func(id string, _ int) string {
		return viewKey(id)
	})
	if len(keys) == 0 {
		return
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Warn("team view cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func viewKey(teamID string) string {
	return viewKeyPrefix + teamID
}

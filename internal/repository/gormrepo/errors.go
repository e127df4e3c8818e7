package gormrepo

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/repository"
	apperrors "github.com/charlesng35/pitwall/pkg/errors"
)

// ErrInvalidReference is returned when a row points at a team or driver that
// does not exist.
var ErrInvalidReference = apperrors.NewBadRequest("referenced team or driver does not exist")

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case isUniqueConstraintError(err):
		return repository.ErrConflict.WithInternal(err)
	case isForeignKeyError(err):
		return ErrInvalidReference.WithInternal(err)
	default:
		return err
	}
}

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && myErr.Number == 1062 {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")
}

// isForeignKeyError detects foreign key violations across vendors.
func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23503" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && (myErr.Number == 1451 || myErr.Number == 1452) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

package repository

import (
	"fmt"
	"net/http"

	apperrors "github.com/charlesng35/pitwall/pkg/errors"
)

var (
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = apperrors.New("NOT_FOUND", "Record not found", http.StatusNotFound)
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = apperrors.NewConflict("Record conflicts with an existing one")
)

// TransactionError reports a multi-step write that could not complete and was
// rolled back. Retrying the whole operation is safe.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("repository: %s rolled back: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

package rating

import "fmt"

// InconsistentDataError reports a team that references a lender without a
// matching rental record. It indicates corrupt stored state.
type InconsistentDataError struct {
	TeamID   string
	LenderID string
}

func (e *InconsistentDataError) Error() string {
	return fmt.Sprintf("rating: team %q rents equipment from %q but no rental record exists", e.TeamID, e.LenderID)
}

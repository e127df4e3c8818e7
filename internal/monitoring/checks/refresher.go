package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/charlesng35/pitwall/internal/app/maintenance"
	"github.com/charlesng35/pitwall/internal/monitoring"
)

const defaultRefresherMaxAge = 3 * time.Hour

// RunReporter exposes the outcome of the latest background refresh.
type RunReporter interface {
	LastRun() (maintenance.RunStatus, bool)
}

// Refresher verifies that the performance refresh ran recently. A run with
// failed teams degrades the result; a run that could not list teams is down.
func Refresher(source RunReporter, maxAge time.Duration, now func() time.Time) monitoring.Check {
	if maxAge <= 0 {
		maxAge = defaultRefresherMaxAge
	}
	if now == nil {
		now = time.Now
	}

	return monitoring.NewCheck("performance_refresh", func(context.Context) monitoring.ProbeResult {
		if source == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "refresh disabled"}
		}

		last, ok := source.LastRun()
		if !ok {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "pending first run"}
		}

		status := monitoring.StatusUp
		var details string

		switch {
		case last.Err != nil && last.Stats.Checked == 0:
			status = monitoring.StatusDown
			details = last.Err.Error()
		case last.Stats.Failed > 0:
			status = monitoring.StatusDegraded
			details = fmt.Sprintf("%d of %d teams failed", last.Stats.Failed, last.Stats.Checked)
		}

		if age := now().Sub(last.At); age > maxAge {
			status = monitoring.Worst(status, monitoring.StatusDegraded)
			details = fmt.Sprintf("last run %s ago", age.Truncate(time.Second))
		}

		return monitoring.ProbeResult{Status: status, Details: details}
	})
}

package checks

import (
	"context"
	"time"

	"github.com/charlesng35/pitwall/internal/cache"
	"github.com/charlesng35/pitwall/internal/monitoring"
)

const defaultCacheTimeout = 2 * time.Second

// Pinger is implemented by cache stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Cache returns a readiness probe for the team view cache. In-process stores
// are always up. An unreachable remote store only degrades readiness since
// views fall back to the database.
func Cache(store cache.Store, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("cache", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if store == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "cache disabled"}
		}

		pinger, ok := store.(Pinger)
		if !ok {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "in-process"}
		}

		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultCacheTimeout))
		defer cancel()

		result := monitoring.ResultFromError("cache", pinger.Ping(probeCtx), time.Since(start))
		if result.Status == monitoring.StatusDown {
			result.Status = monitoring.StatusDegraded
		}
		return result
	})
}

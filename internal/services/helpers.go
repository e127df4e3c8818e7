package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charlesng35/pitwall/internal/rating"
	"github.com/charlesng35/pitwall/pkg/metrics"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func normaliseIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// observeRating records the outcome of a rating computation.
func observeRating(err error) {
	var inconsistent *rating.InconsistentDataError
	switch {
	case err == nil:
		metrics.RatingComputations.WithLabelValues("ok").Inc()
	case errors.As(err, &inconsistent):
		metrics.RatingComputations.WithLabelValues("inconsistent").Inc()
	default:
		metrics.RatingComputations.WithLabelValues("error").Inc()
	}
}

func optionalTrimmed(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
